package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/Vovarama1992/translate_speech/internal/lang"
	"github.com/Vovarama1992/translate_speech/internal/pipeline"
)

func newTranslateCmd() *cobra.Command {
	var (
		language string
		text     string
		file     string
		out      string
	)

	cmd := &cobra.Command{
		Use:   "translate",
		Short: "Translate --text or --file once and save the speech to --out",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if text != "" && file != "" {
				return fmt.Errorf("use either --text or --file, not both")
			}

			a, cleanup, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			in := pipeline.Input{Mode: pipeline.ModeText, Text: text, Language: language}
			if file != "" {
				f, err := os.Open(file)
				if err != nil {
					return err
				}
				defer f.Close()
				in = pipeline.Input{Mode: pipeline.ModeFile, FileName: filepath.Base(file), File: f, Language: language}
			}

			res, err := a.pipeline.Run(cmd.Context(), in)
			if err != nil {
				return err
			}

			if err := exportAudio(cmd.Context(), a, res.Audio.ID, out); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), res.Translation)
			fmt.Fprintf(cmd.ErrOrStderr(), "audio: %s (%s, %s)\n", out, humanize.Bytes(uint64(res.Audio.Size)), res.LanguageCode)
			return nil
		},
	}

	cmd.Flags().StringVarP(&language, "lang", "l", lang.Names()[0], fmt.Sprintf("target language %v", lang.Names()))
	cmd.Flags().StringVarP(&text, "text", "t", "", "text to translate")
	cmd.Flags().StringVarP(&file, "file", "f", "", "pdf, txt, csv or xlsx file to translate")
	cmd.Flags().StringVarP(&out, "out", "o", "speech.mp3", "where to write the audio")

	return cmd
}

// exportAudio copies the artifact to path and drops it from the store.
func exportAudio(ctx context.Context, a *app, id, path string) error {
	rc, _, err := a.store.Open(ctx, id)
	if err != nil {
		return err
	}
	defer rc.Close()

	dst, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := io.Copy(dst, rc); err != nil {
		dst.Close()
		return err
	}
	if err := dst.Close(); err != nil {
		return err
	}

	return a.store.Delete(ctx, id)
}
