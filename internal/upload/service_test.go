package upload_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	apperrors "github.com/tracksure/tracksure/internal"
	"github.com/tracksure/tracksure/internal/upload"
)

type mockUploader struct {
	objects     map[string][]byte
	lastType    string
	uploadErr   error
	uploadCount int
}

func newMockUploader() *mockUploader {
	return &mockUploader{objects: map[string][]byte{}}
}

func (m *mockUploader) Upload(ctx context.Context, objectName string, data []byte, contentType string) (string, error) {
	if m.uploadErr != nil {
		return "", m.uploadErr
	}
	m.uploadCount++
	m.objects[objectName] = data
	m.lastType = contentType
	return "https://cdn.example.com/" + objectName, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var _ = Describe("Service", func() {
	var (
		storage *mockUploader
		service *upload.Service
	)

	BeforeEach(func() {
		storage = newMockUploader()
		service = upload.NewService(storage, discardLogger())
	})

	It("stores a document and returns its public URL", func() {
		result, err := service.Upload(context.Background(), 10, upload.KindDocument,
			"manual.pdf", "application/pdf", []byte("%PDF-1.4"))
		Expect(err).NotTo(HaveOccurred())

		Expect(result.URL).To(HavePrefix("https://cdn.example.com/document/10/"))
		Expect(result.URL).To(HaveSuffix(".pdf"))
		Expect(result.ContentType).To(Equal("application/pdf"))
		Expect(result.SizeBytes).To(Equal(int64(8)))
		Expect(storage.uploadCount).To(Equal(1))
	})

	It("normalizes the media type before matching the allow list", func() {
		_, err := service.Upload(context.Background(), 10, upload.KindProductImage,
			"box.png", "image/PNG; charset=binary", []byte("png"))
		Expect(err).NotTo(HaveOccurred())
		Expect(storage.lastType).To(Equal("image/png"))
	})

	It("rejects a document over 30MB", func() {
		big := bytes.Repeat([]byte("a"), upload.MaxDocumentSize+1)

		_, err := service.Upload(context.Background(), 10, upload.KindDocument,
			"big.pdf", "application/pdf", big)

		appErr, ok := apperrors.IsAppError(err)
		Expect(ok).To(BeTrue())
		Expect(appErr.StatusCode).To(Equal(http.StatusRequestEntityTooLarge))
		Expect(appErr.Code).To(Equal(apperrors.ErrCodeFileTooLarge))
		Expect(storage.uploadCount).To(BeZero())
	})

	It("rejects a product image over 3MB", func() {
		big := bytes.Repeat([]byte("a"), upload.MaxProductImageSize+1)

		_, err := service.Upload(context.Background(), 10, upload.KindProductImage,
			"big.png", "image/png", big)

		appErr, ok := apperrors.IsAppError(err)
		Expect(ok).To(BeTrue())
		Expect(appErr.StatusCode).To(Equal(http.StatusRequestEntityTooLarge))
	})

	It("rejects a media type outside the allow list", func() {
		_, err := service.Upload(context.Background(), 10, upload.KindProductImage,
			"script.sh", "application/x-sh", []byte("#!/bin/sh"))

		appErr, ok := apperrors.IsAppError(err)
		Expect(ok).To(BeTrue())
		Expect(appErr.StatusCode).To(Equal(http.StatusUnsupportedMediaType))
		Expect(appErr.Code).To(Equal(apperrors.ErrCodeUnsupportedMedia))
		Expect(storage.uploadCount).To(BeZero())
	})

	It("maps storage failure to a gateway error", func() {
		storage.uploadErr = errors.New("connection refused")

		_, err := service.Upload(context.Background(), 10, upload.KindDocument,
			"manual.pdf", "application/pdf", []byte("%PDF-1.4"))

		appErr, ok := apperrors.IsAppError(err)
		Expect(ok).To(BeTrue())
		Expect(appErr.StatusCode).To(Equal(http.StatusBadGateway))
		Expect(appErr.Code).To(Equal(apperrors.ErrCodeStorageFailed))
	})

	It("gives each upload of the same file a distinct object name", func() {
		first, err := service.Upload(context.Background(), 10, upload.KindDocument,
			"manual.pdf", "application/pdf", []byte("%PDF-1.4"))
		Expect(err).NotTo(HaveOccurred())

		second, err := service.Upload(context.Background(), 10, upload.KindDocument,
			"manual.pdf", "application/pdf", []byte("%PDF-1.4"))
		Expect(err).NotTo(HaveOccurred())

		Expect(second.ObjectName).NotTo(Equal(first.ObjectName))
	})
})
