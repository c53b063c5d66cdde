package helper

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"train_station/config"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

const trainImageFolder = "trains"

// ImageStore persists an uploaded image and returns the URL it is served from.
type ImageStore interface {
	Save(ctx context.Context, name string, data []byte) (string, error)
}

func NewImageStore(settings config.Settings) (ImageStore, error) {
	if settings.CloudinaryEnabled() {
		return NewCloudinaryStore(settings)
	}
	return NewLocalStore(settings.MediaRoot, settings.MediaURL), nil
}

// DetectImage sniffs data and returns the file extension of a raster image.
func DetectImage(data []byte) (string, bool) {
	if len(data) == 0 {
		return "", false
	}
	mime := mimetype.Detect(data)
	if !strings.HasPrefix(mime.String(), "image/") || mime.Is("image/svg+xml") {
		return "", false
	}
	return mime.Extension(), true
}

// imageName is "<slug of name>-<uuid>", so repeated uploads never collide.
func imageName(name string) string {
	base := slug.Make(name)
	if base == "" {
		base = "image"
	}
	return base + "-" + uuid.NewString()
}

type CloudinaryStore struct {
	cld *cloudinary.Cloudinary
}

func NewCloudinaryStore(settings config.Settings) (*CloudinaryStore, error) {
	cld, err := cloudinary.NewFromParams(
		settings.CloudinaryCloudName,
		settings.CloudinaryAPIKey,
		settings.CloudinaryAPISecret,
	)
	if err != nil {
		return nil, fmt.Errorf("cloudinary init: %w", err)
	}
	return &CloudinaryStore{cld: cld}, nil
}

func (s *CloudinaryStore) Save(ctx context.Context, name string, data []byte) (string, error) {
	res, err := s.cld.Upload.Upload(ctx, bytes.NewReader(data), uploader.UploadParams{
		Folder:       trainImageFolder,
		PublicID:     imageName(name),
		ResourceType: "image",
	})
	if err != nil {
		return "", fmt.Errorf("cloudinary upload: %w", err)
	}
	return res.SecureURL, nil
}

// LocalStore writes images below root and serves them under baseURL.
type LocalStore struct {
	root    string
	baseURL string
}

func NewLocalStore(root, baseURL string) *LocalStore {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return &LocalStore{root: root, baseURL: baseURL}
}

func (s *LocalStore) Save(_ context.Context, name string, data []byte) (string, error) {
	ext, ok := DetectImage(data)
	if !ok {
		return "", fmt.Errorf("not an image")
	}
	dir := filepath.Join(s.root, trainImageFolder)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	file := imageName(name) + ext
	if err := os.WriteFile(filepath.Join(dir, file), data, 0o644); err != nil {
		return "", err
	}
	return s.baseURL + path.Join(trainImageFolder, file), nil
}
