package extract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestService_Extract_Text(t *testing.T) {
	svc := NewService()
	want := "Bonjour, ça va? 你好"

	res := svc.Extract(context.Background(), "notes.TXT", strings.NewReader(want))
	if !res.OK {
		t.Fatalf("Extract() failed: %s", res.Reason)
	}
	if res.Text != want || res.String() != want {
		t.Errorf("Extract() = %q, want %q", res.Text, want)
	}
}

func TestService_Extract_InvalidUTF8(t *testing.T) {
	svc := NewService()

	res := svc.Extract(context.Background(), "bad.txt", bytes.NewReader([]byte{'a', 0xff, 'b'}))
	if res.OK {
		t.Fatal("Extract() should fail on invalid utf-8")
	}
	if !strings.HasPrefix(res.Reason, "Error reading file: ") {
		t.Errorf("Reason = %q", res.Reason)
	}
	if !strings.Contains(res.Reason, "position 1") {
		t.Errorf("Reason should point at the bad byte: %q", res.Reason)
	}
}

func TestService_Extract_CSV(t *testing.T) {
	svc := NewService()

	res := svc.Extract(context.Background(), "data.csv", strings.NewReader("a,b\n1,2\n"))
	if !res.OK {
		t.Fatalf("Extract() failed: %s", res.Reason)
	}

	lines := strings.Split(res.Text, "\n")
	if len(lines) != 2 {
		t.Fatalf("Extract() lines = %q, want header + 1 row", lines)
	}
	if got := strings.Fields(lines[0]); len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("header = %q", lines[0])
	}
	if got := strings.Fields(lines[1]); len(got) != 2 || got[0] != "1" || got[1] != "2" {
		t.Errorf("row = %q, want exactly two columns without index", lines[1])
	}
}

func TestService_Extract_CSVAlignment(t *testing.T) {
	svc := NewService()

	res := svc.Extract(context.Background(), "data.csv", strings.NewReader("name,qty\napple,10\nkiwi,\n"))
	if !res.OK {
		t.Fatalf("Extract() failed: %s", res.Reason)
	}

	want := " name  qty\napple   10\n kiwi  NaN"
	if res.Text != want {
		t.Errorf("Extract() =\n%s\nwant\n%s", res.Text, want)
	}
}

func TestService_Extract_EmptyCSV(t *testing.T) {
	svc := NewService()

	res := svc.Extract(context.Background(), "empty.csv", strings.NewReader(""))
	if res.OK {
		t.Fatal("Extract() should fail on empty csv")
	}
	if res.Reason != "Error reading file: No columns to parse from file" {
		t.Errorf("Reason = %q", res.Reason)
	}
}

func TestService_Extract_XLSX(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	f.SetCellValue(sheet, "A1", "a")
	f.SetCellValue(sheet, "B1", "b")
	f.SetCellValue(sheet, "A2", 1)
	f.SetCellValue(sheet, "B2", 2)

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("WriteToBuffer() error = %v", err)
	}

	svc := NewService()
	xlsx := svc.Extract(context.Background(), "book.xlsx", bytes.NewReader(buf.Bytes()))
	if !xlsx.OK {
		t.Fatalf("Extract() failed: %s", xlsx.Reason)
	}

	csv := svc.Extract(context.Background(), "book.csv", strings.NewReader("a,b\n1,2\n"))
	if xlsx.Text != csv.Text {
		t.Errorf("xlsx rendering %q differs from csv rendering %q", xlsx.Text, csv.Text)
	}
}

func TestService_Extract_Unsupported(t *testing.T) {
	svc := NewService()

	for _, name := range []string{"slides.pptx", "image.png", "README", "archive.tar.gz"} {
		res := svc.Extract(context.Background(), name, strings.NewReader("whatever"))
		if res.OK {
			t.Errorf("Extract(%q) should not succeed", name)
		}
		if res.String() != "Unsupported file format." {
			t.Errorf("Extract(%q) = %q", name, res.String())
		}
	}
}

// buildPDF собирает минимальный PDF: по одной строке Helvetica на страницу.
func buildPDF(pages ...string) []byte {
	objs := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"", // pages, ниже
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>",
	}
	kids := make([]string, 0, len(pages))
	for _, text := range pages {
		pageNum := len(objs) + 1
		content := fmt.Sprintf("BT /F1 24 Tf 72 720 Td (%s) Tj ET", text)
		objs = append(objs,
			fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 3 0 R >> >> /Contents %d 0 R >>", pageNum+1),
			fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content),
		)
		kids = append(kids, fmt.Sprintf("%d 0 R", pageNum))
	}
	objs[1] = fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), len(pages))

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objs))
	for i, obj := range objs {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(objs)+1)
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objs)+1, xref)

	return buf.Bytes()
}

func TestService_Extract_PDFPagesInOrder(t *testing.T) {
	svc := NewService()

	res := svc.Extract(context.Background(), "doc.pdf", bytes.NewReader(buildPDF("Hello", "World")))
	if !res.OK {
		t.Fatalf("Extract() failed: %s", res.Reason)
	}
	if res.Text != "HelloWorld" {
		t.Errorf("Text = %q, want %q", res.Text, "HelloWorld")
	}
}

func TestService_Extract_MalformedPDF(t *testing.T) {
	svc := NewService()

	res := svc.Extract(context.Background(), "doc.pdf", strings.NewReader("definitely not a pdf"))
	if res.OK {
		t.Fatal("Extract() should fail on malformed pdf")
	}
	if !strings.HasPrefix(res.Reason, "Error reading file: ") {
		t.Errorf("Reason = %q", res.Reason)
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("connection reset") }

func TestService_Extract_ReadError(t *testing.T) {
	svc := NewService()

	res := svc.Extract(context.Background(), "notes.txt", failingReader{})
	if res.Reason != "Error reading file: connection reset" {
		t.Errorf("Reason = %q", res.Reason)
	}
}

func TestExtension(t *testing.T) {
	tests := map[string]string{
		"a.PDF":        "pdf",
		"dir/b.tar.gz": "gz",
		"noext":        "",
		"report.xlsx":  "xlsx",
	}
	for in, want := range tests {
		if got := Extension(in); got != want {
			t.Errorf("Extension(%q) = %q, want %q", in, got, want)
		}
	}
}
