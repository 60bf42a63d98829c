package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log"
	"time"

	config "github.com/peerevalpro/peer_review/configs"
	"github.com/peerevalpro/peer_review/review"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
)

// GenerateReportPDF renders a student's score report to PDF via a headless
// browser. When Cloudinary is configured the PDF is archived in the
// background; the download never waits on the upload.
func GenerateReportPDF(ctx context.Context, report review.Report) ([]byte, error) {
	htmlData, err := renderReportHTML(report)
	if err != nil {
		return nil, fmt.Errorf("failed to render report HTML: %w", err)
	}

	pdfBytes, err := generatePDFFromHTML(ctx, htmlData)
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	if config.Config("CLOUDINARY_URL") != "" {
		go func(data []byte, studentID string) {
			url, err := uploadToCloudinary(data, studentID)
			if err != nil {
				log.Printf("🔥 Failed to archive report PDF to Cloudinary: %v", err)
				return
			}
			log.Printf("✅ Archived report PDF for student %s at %s", studentID, url)
		}(pdfBytes, report.StudentID.String())
	}

	return pdfBytes, nil
}

func renderReportHTML(report review.Report) (string, error) {
	tmpl, err := template.ParseFiles("templates/report.html")
	if err != nil {
		return "", err
	}

	data := struct {
		review.Report
		GeneratedAt string
	}{
		Report:      report,
		GeneratedAt: time.Now().Format("January 2, 2006"),
	}

	var renderedHTML bytes.Buffer
	if err := tmpl.Execute(&renderedHTML, data); err != nil {
		return "", err
	}
	return renderedHTML.String(), nil
}

func generatePDFFromHTML(parent context.Context, htmlContent string) ([]byte, error) {
	ctx, cancel := chromedp.NewContext(parent)
	defer cancel()

	var pdfBuffer []byte
	err := chromedp.Run(ctx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, htmlContent).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			pdf, _, err := page.PrintToPDF().WithPrintBackground(true).Do(ctx)
			if err != nil {
				return err
			}
			pdfBuffer = pdf
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}
	return pdfBuffer, nil
}

func uploadToCloudinary(fileBytes []byte, studentID string) (string, error) {
	cld, err := cloudinary.NewFromURL(config.Config("CLOUDINARY_URL"))
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	uploadParams := uploader.UploadParams{
		PublicID:     fmt.Sprintf("reports/%s_%s", studentID, uuid.New().String()),
		Folder:       "peer_review_reports",
		ResourceType: "raw",
	}

	uploadResult, err := cld.Upload.Upload(ctx, bytes.NewReader(fileBytes), uploadParams)
	if err != nil {
		return "", err
	}

	return uploadResult.SecureURL, nil
}
