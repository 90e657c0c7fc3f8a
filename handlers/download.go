package handlers

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/jung-kurt/gofpdf"
	qrcode "github.com/skip2/go-qrcode"

	"things_future/session"
	"things_future/templates"
)

// HistoryPDF downloads the session's past prompts as a printable sheet.
func (h *Handler) HistoryPDF(w http.ResponseWriter, r *http.Request) {
	sess, err := h.session(w, r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := writeHistoryPDF(&buf, h.Title, sess.History()); err != nil {
		h.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="past-prompts.pdf"`)
	w.Write(buf.Bytes())
}

func writeHistoryPDF(buf *bytes.Buffer, title string, records []session.Record) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(title, true)
	pdf.SetMargins(20, 20, 20)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(0, 12, tr(title), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.SetTextColor(110, 110, 110)
	pdf.CellFormat(0, 8, "Past Prompts", "", 1, "C", false, 0, "")
	pdf.Ln(6)

	if len(records) == 0 {
		pdf.SetFont("Helvetica", "", 12)
		pdf.MultiCell(0, 8, "No past prompts yet. Generate some prompts to see your history here!", "", "C", false)
	}
	for i, rec := range records {
		pdf.SetTextColor(110, 110, 110)
		pdf.SetFont("Helvetica", "", 9)
		pdf.CellFormat(0, 6, fmt.Sprintf("#%d  %s", i+1, templates.FormatTimestamp(rec.CreatedAt)), "", 1, "L", false, 0, "")

		pdf.SetTextColor(20, 20, 20)
		pdf.SetFont("Helvetica", "B", 13)
		pdf.SetFillColor(245, 245, 245)
		pdf.MultiCell(0, 8, tr(rec.Selection().Sentence()), "", "L", true)
		pdf.Ln(4)
	}

	return pdf.Output(buf)
}

// ShareQR renders the share URL as a QR code.
func (h *Handler) ShareQR(w http.ResponseWriter, r *http.Request) {
	png, err := qrcode.Encode(h.ShareURL, qrcode.Medium, 512)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Write(png)
}
