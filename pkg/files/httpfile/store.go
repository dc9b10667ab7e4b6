package httpfile

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"regexp"
	"strings"

	"github.com/fileway/fileway/pkg/files"
)

const typeTag = "http"

var _ files.FileSystem = (*Store)(nil)

// Store browses a static HTTP directory index (nginx/Apache style
// autoindex pages). It is read-only: every mutation returns
// files.ErrNotImplemented.
type Store struct {
	root   url.URL
	client *http.Client
}

type StoreOption func(*Store)

func WithHTTPClient(client *http.Client) StoreOption {
	return func(s *Store) {
		s.client = client
	}
}

func NewStore(root url.URL, o ...StoreOption) *Store {
	s := &Store{root: root}
	for _, opt := range o {
		opt(s)
	}
	if s.root.Path == "" {
		s.root.Path = "/"
	}
	return s
}

func (s *Store) Type() string { return typeTag }

func (s *Store) Root() string { return s.root.Path }

func (s *Store) RootTitle() string {
	root := s.root
	root.User = nil
	return root.String()
}

func (s *Store) httpClient() *http.Client {
	if s.client != nil {
		return s.client
	}
	return http.DefaultClient
}

var hrefRe = regexp.MustCompile(`<a href="([^"]+)">`)

func (s *Store) ListContents(ctx context.Context, dir string, recursive bool) ([]files.Entry, error) {
	u := s.root
	u.Path = dir
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := s.httpClient().Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch directory listing: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to list %s: unexpected status %d", dir, resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var entries []files.Entry
	for _, match := range hrefRe.FindAllStringSubmatch(string(body), -1) {
		href := match[1]
		if href == "../" || href == "/" || strings.HasPrefix(href, "?") {
			continue
		}
		isDir := strings.HasSuffix(href, "/")
		name := strings.TrimSuffix(href, "/")
		if unescaped, err := url.PathUnescape(name); err == nil {
			name = unescaped
		}
		if name == "" || strings.Contains(name, "/") {
			continue
		}
		fullPath := s.AbsolutePath(dir, name)
		var entry files.Entry
		if isDir {
			entry = files.NewFolder(name, fullPath)
		} else {
			entry = files.NewFile(name, fullPath)
		}
		entries = append(entries, entry)
		if recursive && isDir {
			descendants, err := s.ListContents(ctx, fullPath, true)
			if err != nil {
				return nil, err
			}
			entries = append(entries, descendants...)
		}
	}
	return entries, nil
}

func (s *Store) AbsolutePath(dir, name string) string {
	if strings.HasSuffix(dir, "/") {
		return dir + name
	}
	return dir + "/" + name
}

func (s *Store) CreateFolder(ctx context.Context, dir string) error {
	return fmt.Errorf("create folder over http: %w", files.ErrNotImplemented)
}

func (s *Store) CreateFile(ctx context.Context, filePath string, contents []byte) error {
	return fmt.Errorf("create file over http: %w", files.ErrNotImplemented)
}

func (s *Store) PathExists(ctx context.Context, p string) bool {
	u := s.root
	u.Path = p
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, u.String(), nil)
	if err != nil {
		return false
	}
	resp, err := s.httpClient().Do(req)
	if err != nil {
		return false
	}
	_ = resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

func (s *Store) GoUp(p string) string {
	clean := path.Clean(p)
	if clean == s.root.Path || clean == "/" {
		return s.root.Path
	}
	parent := path.Dir(clean)
	if len(parent) < len(s.root.Path) {
		return s.root.Path
	}
	return parent
}

func (s *Store) IsHidden(p string) bool {
	return strings.HasPrefix(path.Base(p), ".")
}

func (s *Store) GetFileOrFolder(ctx context.Context, p string) (files.Entry, error) {
	parent, name := path.Split(path.Clean(p))
	entries, err := s.ListContents(ctx, path.Clean(parent), false)
	if err != nil {
		return nil, err
	}
	for _, entry := range entries {
		if entry.Name() == name {
			return entry, nil
		}
	}
	return files.NewFile(name, p), nil
}

func (s *Store) ReadFile(ctx context.Context, filePath string) ([]byte, error) {
	u := s.root
	u.Path = filePath
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := s.httpClient().Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", filePath, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch %s: unexpected status %d", filePath, resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

func (s *Store) Rename(ctx context.Context, oldPath, newPath string) error {
	return fmt.Errorf("rename over http: %w", files.ErrNotImplemented)
}

func (s *Store) Delete(ctx context.Context, p string) error {
	return fmt.Errorf("delete over http: %w", files.ErrNotImplemented)
}
