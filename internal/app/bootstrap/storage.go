package bootstrap

import (
	"context"
	"fmt"
	"strings"

	"github.com/dalemusser/waffle/pantry/storage"
)

// newStorage builds the blob backend for uploaded photos and logos from the
// storage_* settings. ValidateConfig has already checked them.
func newStorage(ctx context.Context, appCfg AppConfig) (storage.Store, error) {
	switch appCfg.StorageType {
	case "", "local":
		return storage.NewLocal(storage.LocalConfig{
			BasePath: appCfg.StorageLocalPath,
			BaseURL:  appCfg.StorageLocalURL,
		})
	case "s3":
		return storage.NewS3(ctx, storage.S3Config{
			Region:  appCfg.StorageS3Region,
			Bucket:  appCfg.StorageS3Bucket,
			Prefix:  appCfg.StorageS3Prefix,
			BaseURL: strings.TrimRight(appCfg.StorageS3PublicURL, "/"),
		})
	default:
		return nil, fmt.Errorf("unknown storage type %q", appCfg.StorageType)
	}
}
