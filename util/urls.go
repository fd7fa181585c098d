package util

import (
	"fmt"

	"github.com/spf13/viper"
)

// ConstructFileURL builds the public view URL for an object in the
// storage bucket. No signing, the serve endpoint checks nothing beyond
// the IDs.
func ConstructFileURL(bucketFileID string) string {
	return fmt.Sprintf("%s/storage/buckets/%s/files/%s/view?project=%s",
		viper.GetString("app.endpoint_url"),
		viper.GetString("aws.bucket"),
		bucketFileID,
		viper.GetString("app.project_id"),
	)
}

// ConstructDownloadURL builds the attachment-disposition counterpart of
// ConstructFileURL.
func ConstructDownloadURL(bucketFileID string) string {
	return fmt.Sprintf("%s/storage/buckets/%s/files/%s/download?project=%s",
		viper.GetString("app.endpoint_url"),
		viper.GetString("aws.bucket"),
		bucketFileID,
		viper.GetString("app.project_id"),
	)
}
