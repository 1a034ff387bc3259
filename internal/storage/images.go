// Package storage 保存上传的帖子图片，数据库中只记录相对名称（posts/<uuid>.<ext>）。
package storage

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ErrNotImage 上传内容不是图片
var ErrNotImage = errors.New("uploaded file is not an image")

const uploadDir = "posts"

type ImageStore interface {
	// Save 校验并保存图片，返回存储名
	Save(ctx context.Context, filename string, r io.Reader) (string, error)
	Delete(ctx context.Context, name string) error
	// URL 返回对外访问地址
	URL(name string) string
}

type localImageStore struct {
	root      string
	urlPrefix string
}

// NewLocalImageStore 把图片写到 root/posts 下，通过 urlPrefix 对外提供访问
func NewLocalImageStore(root, urlPrefix string) ImageStore {
	return &localImageStore{root: root, urlPrefix: strings.TrimRight(urlPrefix, "/")}
}

func (s *localImageStore) Save(ctx context.Context, filename string, r io.Reader) (string, error) {
	br := bufio.NewReaderSize(r, 512)
	head, err := br.Peek(512)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, bufio.ErrBufferFull) {
		return "", fmt.Errorf("read upload: %w", err)
	}
	contentType := http.DetectContentType(head)
	if !strings.HasPrefix(contentType, "image/") {
		return "", ErrNotImage
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		ext = extFor(contentType)
	}
	name := path.Join(uploadDir, uuid.NewString()+ext)

	dir := filepath.Join(s.root, uploadDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}
	full := filepath.Join(s.root, filepath.FromSlash(name))
	f, err := os.Create(full)
	if err != nil {
		return "", fmt.Errorf("create image: %w", err)
	}
	_, err = io.Copy(f, br)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		// 不留下写了一半的文件
		_ = os.Remove(full)
		return "", fmt.Errorf("write image: %w", err)
	}
	return name, nil
}

func (s *localImageStore) Delete(_ context.Context, name string) error {
	if name == "" {
		return nil
	}
	err := os.Remove(filepath.Join(s.root, filepath.FromSlash(name)))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

func (s *localImageStore) URL(name string) string {
	if name == "" {
		return ""
	}
	return s.urlPrefix + "/" + name
}

func extFor(contentType string) string {
	switch contentType {
	case "image/gif":
		return ".gif"
	case "image/png":
		return ".png"
	case "image/jpeg":
		return ".jpg"
	case "image/webp":
		return ".webp"
	}
	return ""
}
