package sink

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/sirupsen/logrus"

	"chemviz/internal/config"
)

// Minio puts files into an S3 compatible bucket.
type Minio struct {
	cli    *minio.Client
	bucket string
	prefix string
	urlPfx string
	logger *logrus.Entry
}

func NewMinio(conf config.S3Config, logger *logrus.Entry) (*Minio, error) {
	region := conf.Region
	if region == "" {
		region = "us-east-1"
	}
	cli, err := minio.New(conf.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(conf.AccessKeyID, conf.SecretAccessKey, ""),
		Secure: conf.UseSSL,
		Region: region,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client failed: %w", err)
	}
	return &Minio{
		cli:    cli,
		bucket: conf.Bucket,
		prefix: conf.Prefix,
		urlPfx: conf.UrlPrefix(),
		logger: logger,
	}, nil
}

// ObjectName is the key filename is stored under.
func (m *Minio) ObjectName(filename string) string {
	return strings.TrimPrefix(path.Join(m.prefix, path.Base(filename)), "/")
}

// URL is where an object saved under filename can be fetched, given the
// bucket allows it.
func (m *Minio) URL(filename string) string {
	return m.urlPfx + "/" + m.ObjectName(filename)
}

func (m *Minio) Save(ctx context.Context, data []byte, filename string) error {
	object := m.ObjectName(filename)
	_, err := m.cli.PutObject(
		ctx,
		m.bucket,
		object,
		bytes.NewReader(data),
		int64(len(data)),
		minio.PutObjectOptions{
			ContentType: ContentType(filename),
		},
	)
	if err != nil {
		return fmt.Errorf("put object to minio failed: %w", err)
	}
	if m.logger != nil {
		m.logger.Infof("saved %s", m.URL(filename))
	}
	return nil
}
