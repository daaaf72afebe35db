package main

import (
	"context"
	"log"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Vovarama1992/translate_speech/internal/ai"
	"github.com/Vovarama1992/translate_speech/internal/artifact"
	"github.com/Vovarama1992/translate_speech/internal/config"
	"github.com/Vovarama1992/translate_speech/internal/delivery"
	"github.com/Vovarama1992/translate_speech/internal/error_notificator"
	"github.com/Vovarama1992/translate_speech/internal/extract"
	"github.com/Vovarama1992/translate_speech/internal/pipeline"
	"github.com/Vovarama1992/translate_speech/internal/speech"
)

const serviceName = "translate_speech"

type app struct {
	cfg      *config.Config
	log      *zap.SugaredLogger
	zl       *logger.ZapLogger
	store    artifact.Store
	public   delivery.PublicURLer
	pipeline *pipeline.Service
}

func main() {
	root := &cobra.Command{
		Use:           "translate_speech",
		Short:         "Translate text or documents with Groq and turn the result into speech",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	serve := newServeCmd()
	root.AddCommand(serve, newTranslateCmd())

	// без подкоманды = serve
	root.RunE = serve.RunE

	if err := root.Execute(); err != nil {
		log.Fatalf("%v", err)
	}
}

func newApp(ctx context.Context) (*app, func(), error) {
	// =========================================================================
	// ENV / LOGGER
	// =========================================================================

	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	baseLogger, _ := zap.NewProduction()
	sugar := baseLogger.Sugar()
	zl := logger.NewZapLogger(sugar)
	cleanup := func() { _ = baseLogger.Sync() }

	// =========================================================================
	// INFRASTRUCTURE
	// =========================================================================

	var store artifact.Store
	var public delivery.PublicURLer
	if cfg.S3.Enabled() {
		s3, err := artifact.NewS3Store(ctx, artifact.S3Options{
			Endpoint:  cfg.S3.Endpoint,
			AccessKey: cfg.S3.AccessKey,
			SecretKey: cfg.S3.SecretKey,
			Bucket:    cfg.S3.Bucket,
			Region:    cfg.S3.Region,
			Secure:    cfg.S3.Secure,
		})
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		store, public = s3, s3
	} else {
		local, err := artifact.NewLocalStore(cfg.ArtifactDir)
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		store = local
	}

	// =========================================================================
	// ERROR NOTIFICATION
	// =========================================================================

	var notifyInfra error_notificator.Notificator
	if cfg.TelegramBotToken != "" && cfg.TelegramAdminChatID != 0 {
		tg, err := error_notificator.NewTelegramInfra(cfg.TelegramBotToken, cfg.TelegramAdminChatID)
		if err != nil {
			sugar.Warnw("telegram notifier disabled", "error", err)
		} else {
			notifyInfra = tg
		}
	}
	errService := error_notificator.NewService(notifyInfra, sugar)

	// =========================================================================
	// CLIENTS (LLM / TTS)
	// =========================================================================

	groqClient := ai.NewOpenAIClient(cfg.GroqAPIKey, cfg.GroqBaseURL, cfg.TranslateTimeout)

	var ttsClient speech.TTSClient
	switch cfg.TTSProvider {
	case "elevenlabs":
		ttsClient = speech.NewElevenLabsClient(cfg.ElevenLabsAPIKey, cfg.ElevenLabsVoiceID, cfg.TTSBaseURL, cfg.TTSTimeout)
	default:
		ttsClient = speech.NewGoogleTTSClient(cfg.TTSBaseURL, cfg.TTSTimeout)
	}

	// =========================================================================
	// DOMAIN SERVICES
	// =========================================================================

	translator := ai.NewService(groqClient, cfg.GroqModel, sugar)
	speechService := speech.NewService(ttsClient, "", sugar)
	extractService := extract.NewService()

	pipelineService := pipeline.NewService(
		extractService,
		translator,
		speechService,
		store,
		errService,
		sugar,
	)

	return &app{
		cfg:      cfg,
		log:      sugar,
		zl:       zl,
		store:    store,
		public:   public,
		pipeline: pipelineService,
	}, cleanup, nil
}
