// Package blob stores user avatar images in a bucket opened through the
// Go CDK, so local disk, in-memory and cloud buckets all share one code path.
package blob

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"strings"

	"streamverse/config"
	domainerrors "streamverse/internal/domain/errors"
	"streamverse/internal/domain/service"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
	"gocloud.dev/blob"
	"gocloud.dev/gcerrors"

	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/memblob"
)

// mimeExtensions maps the image media types accepted in avatar data URIs to
// the object key extension used in the bucket.
var mimeExtensions = map[string]string{
	"image/png":  "png",
	"image/jpeg": "jpg",
	"image/jpg":  "jpg",
	"image/webp": "webp",
	"image/gif":  "gif",
}

// avatarStore implements service.AvatarStore on top of a *blob.Bucket.
type avatarStore struct {
	bucket        *blob.Bucket
	folder        string
	publicBaseURL string
	logger        *slog.Logger
}

// Params defines the dependencies for the avatar store.
type Params struct {
	fx.In

	LC     fx.Lifecycle
	Config *config.Config
	Logger *slog.Logger
}

// NewAvatarStore opens the configured bucket and returns the store. The
// bucket handle is closed when the application shuts down.
func NewAvatarStore(params Params) (service.AvatarStore, error) {
	cfg := params.Config.Avatar
	if cfg == nil || cfg.BucketURL == "" {
		return nil, errors.New("avatar bucket url must be provided")
	}

	bucket, err := blob.OpenBucket(context.Background(), cfg.BucketURL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open avatar bucket")
	}

	params.LC.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return bucket.Close()
		},
	})

	return &avatarStore{
		bucket:        bucket,
		folder:        strings.Trim(cfg.Folder, "/"),
		publicBaseURL: strings.TrimRight(cfg.PublicBaseURL, "/"),
		logger:        params.Logger,
	}, nil
}

// Upload decodes a base64 data URI, writes the image under a per-user key and
// returns the public URL of the stored object. Re-uploading overwrites the
// previous avatar because the key depends only on the user id and extension.
func (s *avatarStore) Upload(ctx context.Context, userID uuid.UUID, dataURI string) (string, error) {
	mediaType, payload, err := parseDataURI(dataURI)
	if err != nil {
		return "", err
	}

	ext, ok := mimeExtensions[mediaType]
	if !ok {
		return "", domainerrors.ErrInvalidInput.WrapMessage(fmt.Sprintf("unsupported avatar media type %q", mediaType))
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", domainerrors.ErrInvalidInput.WrapMessage("avatar image is not valid base64")
	}

	key := s.objectKey(userID, ext)
	opts := &blob.WriterOptions{ContentType: mediaType}
	if err := s.bucket.WriteAll(ctx, key, data, opts); err != nil {
		return "", errors.Wrap(err, "failed to write avatar object")
	}

	s.logger.DebugContext(ctx, "avatar uploaded",
		slog.String("user_id", userID.String()),
		slog.String("key", key),
		slog.Int("bytes", len(data)))

	return s.publicBaseURL + "/" + key, nil
}

// Delete removes every stored avatar object for the user. A missing object is
// not an error, so deleting an account without an avatar is a no-op.
func (s *avatarStore) Delete(ctx context.Context, userID uuid.UUID) error {
	for _, ext := range mimeExtensions {
		key := s.objectKey(userID, ext)
		if err := s.bucket.Delete(ctx, key); err != nil {
			if gcerrors.Code(err) == gcerrors.NotFound {
				continue
			}

			return errors.Wrap(err, "failed to delete avatar object")
		}
	}

	return nil
}

func (s *avatarStore) objectKey(userID uuid.UUID, ext string) string {
	if s.folder == "" {
		return fmt.Sprintf("avatars/%s.%s", userID, ext)
	}

	return fmt.Sprintf("%s/avatars/%s.%s", s.folder, userID, ext)
}

// parseDataURI splits a "data:<media-type>;base64,<payload>" string into its
// media type and raw base64 payload.
func parseDataURI(dataURI string) (string, string, error) {
	rest, ok := strings.CutPrefix(dataURI, "data:")
	if !ok {
		return "", "", domainerrors.ErrInvalidInput.WrapMessage("avatar must be a base64 data URI")
	}

	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", "", domainerrors.ErrInvalidInput.WrapMessage("avatar data URI is malformed")
	}

	mediaType, encoding, ok := strings.Cut(meta, ";")
	if !ok || encoding != "base64" {
		return "", "", domainerrors.ErrInvalidInput.WrapMessage("avatar data URI must be base64 encoded")
	}

	return strings.ToLower(strings.TrimSpace(mediaType)), payload, nil
}
