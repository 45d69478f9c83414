package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	"iqro_backend/internals/configs"
)

// CloudinaryService: driver default, sama dengan host media aplikasi mobile.
// Audio diunggah sebagai resource_type "video" (aturan Cloudinary untuk audio).
type CloudinaryService struct {
	Cld        *cloudinary.Cloudinary
	BaseFolder string
}

func NewCloudinaryFromEnv() (*CloudinaryService, error) {
	var (
		cld *cloudinary.Cloudinary
		err error
	)
	if u := configs.GetEnv("CLOUDINARY_URL"); u != "" {
		cld, err = cloudinary.NewFromURL(u)
	} else {
		name := configs.GetEnv("CLOUDINARY_CLOUD_NAME")
		key := configs.GetEnv("CLOUDINARY_API_KEY")
		secret := configs.GetEnv("CLOUDINARY_API_SECRET")
		if name == "" || key == "" || secret == "" {
			return nil, fmt.Errorf("missing env: CLOUDINARY_URL atau CLOUDINARY_CLOUD_NAME/API_KEY/API_SECRET")
		}
		cld, err = cloudinary.NewFromParams(name, key, secret)
	}
	if err != nil {
		return nil, fmt.Errorf("cloudinary init: %w", err)
	}
	return &CloudinaryService{
		Cld:        cld,
		BaseFolder: configs.GetEnv("CLOUDINARY_FOLDER", "iqro"),
	}, nil
}

func (s *CloudinaryService) Driver() string { return "cloudinary" }

func resourceTypeFor(contentType string) string {
	switch {
	case strings.HasPrefix(contentType, "image/"):
		return "image"
	case strings.HasPrefix(contentType, "audio/"), strings.HasPrefix(contentType, "video/"):
		return "video"
	default:
		return "raw"
	}
}

func (s *CloudinaryService) Upload(ctx context.Context, r io.Reader, filename, contentType, folder string) (*Stored, error) {
	rt := resourceTypeFor(contentType)
	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	folderPath := strings.Trim(strings.Join([]string{s.BaseFolder, folder}, "/"), "/")

	resp, err := s.Cld.Upload.Upload(ctx, r, uploader.UploadParams{
		Folder:       folderPath,
		PublicID:     slugify(base) + "_" + randHex(4),
		ResourceType: rt,
	})
	if err != nil {
		return nil, fmt.Errorf("cloudinary upload: %w", err)
	}
	if resp.Error.Message != "" {
		return nil, fmt.Errorf("cloudinary upload: %s", resp.Error.Message)
	}
	return &Stored{
		URL:         resp.SecureURL,
		Ref:         rt + ":" + resp.PublicID,
		ContentType: contentType,
		Size:        int64(resp.Bytes),
	}, nil
}

// Delete menerima ref "<resource_type>:<public_id>".
func (s *CloudinaryService) Delete(ctx context.Context, ref string) error {
	rt, publicID := splitCloudinaryRef(ref)
	if publicID == "" {
		return nil
	}
	_, err := s.Cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID:     publicID,
		ResourceType: rt,
	})
	return err
}

func splitCloudinaryRef(ref string) (resourceType, publicID string) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", ""
	}
	if i := strings.Index(ref, ":"); i > 0 {
		return ref[:i], ref[i+1:]
	}
	return "image", ref
}
