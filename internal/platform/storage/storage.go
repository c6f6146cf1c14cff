package storage

import (
	"bufio"
	"context"
	"errors"
	"io"

	"github.com/yungbote/people-backend/internal/platform/logger"
)

// Backend stores opaque objects by key. Create must fail rather than
// overwrite an existing key.
type Backend interface {
	Create(ctx context.Context, key, contentType string, r io.Reader) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}

type Service interface {
	// Save stores content and returns "{category}/{filename}".
	Save(ctx context.Context, content io.Reader, extension, category, namePrefix string) (string, error)
	Open(ctx context.Context, relativePath string) (io.ReadCloser, string, error)
	Delete(ctx context.Context, relativePath string) error
}

type service struct {
	log     *logger.Logger
	backend Backend
	policy  Policy
}

func NewService(log *logger.Logger, backend Backend, policy Policy) Service {
	return &service{
		log:     log.With("service", "StorageService"),
		backend: backend,
		policy:  policy,
	}
}

func (s *service) Save(ctx context.Context, content io.Reader, extension, category, namePrefix string) (string, error) {
	ext, err := checkExtension(extension)
	if err != nil {
		return "", err
	}
	if content == nil {
		return "", &Error{Code: CodeEmpty, Detail: "no content"}
	}
	br := bufio.NewReader(content)
	if _, err := br.Peek(1); err != nil {
		if errors.Is(err, io.EOF) {
			return "", &Error{Code: CodeEmpty, Detail: "no content"}
		}
		return "", ioError("read upload", err)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	key := objectKey(category, namePrefix, ext)
	lr := &limitReader{r: &ctxReader{ctx: ctx, r: br}, max: s.policy.maxBytes()}
	if err := s.backend.Create(ctx, key, contentTypeForKey(key), lr); err != nil {
		var sErr *Error
		if errors.As(err, &sErr) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return "", err
		}
		return "", ioError("create "+key, err)
	}
	s.log.Debug("file stored", "path", key, "bytes", lr.read)
	return key, nil
}

func (s *service) Open(ctx context.Context, relativePath string) (io.ReadCloser, string, error) {
	key, err := cleanKey(relativePath)
	if err != nil {
		return nil, "", err
	}
	rc, err := s.backend.Open(ctx, key)
	if err != nil {
		return nil, "", err
	}
	return rc, contentTypeForKey(key), nil
}

func (s *service) Delete(ctx context.Context, relativePath string) error {
	key, err := cleanKey(relativePath)
	if err != nil {
		return err
	}
	return s.backend.Delete(ctx, key)
}

// ctxReader stops a copy as soon as ctx is done.
type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (c *ctxReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
