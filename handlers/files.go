package handlers

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"cloud.google.com/go/storage"
)

const uploadDir = "./uploads"

// UploadFile stores a completion photo or document and returns its URL.
// With a GCS bucket configured the object goes there; otherwise it lands in
// the local uploads directory, which is good enough for development.
func UploadFile(w http.ResponseWriter, r *http.Request) {
	useGCS := os.Getenv("GCS_BUCKET") != "" &&
		(os.Getenv("USE_GCS") == "true" ||
			os.Getenv("GOOGLE_APPLICATION_CREDENTIALS") != "" ||
			os.Getenv("K_SERVICE") != "")

	if useGCS {
		uploadToGCS(w, r)
		return
	}
	uploadToLocal(w, r)
}

func openUpload(w http.ResponseWriter, r *http.Request) (io.ReadCloser, string, bool) {
	// 50MB cap covers phone photos of a loaded truck.
	if err := r.ParseMultipartForm(50 << 20); err != nil {
		http.Error(w, "bad multipart form: "+err.Error(), http.StatusBadRequest)
		return nil, "", false
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "missing file field: "+err.Error(), http.StatusBadRequest)
		return nil, "", false
	}
	name := fmt.Sprintf("%s-%s", time.Now().Format("20060102-150405"), filepath.Base(header.Filename))
	return file, name, true
}

func uploadToLocal(w http.ResponseWriter, r *http.Request) {
	if err := os.MkdirAll(uploadDir, 0755); err != nil {
		http.Error(w, "failed to create upload directory: "+err.Error(), http.StatusInternalServerError)
		return
	}

	file, name, ok := openUpload(w, r)
	if !ok {
		return
	}
	defer file.Close()

	dst, err := os.Create(filepath.Join(uploadDir, name))
	if err != nil {
		http.Error(w, "failed to create file: "+err.Error(), http.StatusInternalServerError)
		return
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		http.Error(w, "failed to save file: "+err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"url":      fmt.Sprintf("/uploads/%s", name),
		"filename": name,
	})
}

func uploadToGCS(w http.ResponseWriter, r *http.Request) {
	bucket := os.Getenv("GCS_BUCKET")

	file, name, ok := openUpload(w, r)
	if !ok {
		return
	}
	defer file.Close()

	ctx, cancel := context.WithTimeout(r.Context(), 60*time.Second)
	defer cancel()

	client, err := storage.NewClient(ctx)
	if err != nil {
		http.Error(w, "storage client error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	defer client.Close()

	obj := client.Bucket(bucket).Object(name)
	writer := obj.NewWriter(ctx)
	if _, err := io.Copy(writer, file); err != nil {
		writer.Close()
		http.Error(w, "failed to upload file: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if err := writer.Close(); err != nil {
		http.Error(w, "failed to finalize upload: "+err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"url":      fmt.Sprintf("https://storage.googleapis.com/%s/%s", bucket, name),
		"filename": name,
	})
}
