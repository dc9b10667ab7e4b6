package ftpfile

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net"
	"path"
	"strings"
	"time"

	"github.com/jlaffaye/ftp"
	"github.com/rs/zerolog/log"

	"github.com/fileway/fileway/pkg/files"
)

const typeTag = "ftp"

const anonymousUser = "anonymous"

var logger = log.With().Str("component", "ftpfile").Logger()

// ftpConn is the subset of *ftp.ServerConn the store uses. It exists so
// tests can inject a fake session.
type ftpConn interface {
	Login(user, password string) error
	List(path string) ([]*ftp.Entry, error)
	ChangeDir(path string) error
	MakeDir(path string) error
	Stor(path string, r io.Reader) error
	Retr(path string) (io.ReadCloser, error)
	Rename(from, to string) error
	Delete(path string) error
	RemoveDir(path string) error
	Quit() error
}

type serverConn struct {
	*ftp.ServerConn
}

func (c serverConn) Retr(path string) (io.ReadCloser, error) {
	return c.ServerConn.Retr(path)
}

var dial = func(addr string, options ...ftp.DialOption) (ftpConn, error) {
	c, err := ftp.Dial(addr, options...)
	if err != nil {
		return nil, err
	}
	return serverConn{c}, nil
}

var _ files.FileSystem = (*Store)(nil)

// Store browses a single FTP site. The session is dialed lazily on
// first use and kept open; a failed operation drops it so the next
// call reconnects. Anonymous login is used unless credentials are
// given.
type Store struct {
	host     string
	root     string
	user     string
	password string
	explicit bool
	implicit bool

	conn ftpConn

	// Path cache filled by listings so that aggregate property
	// lookups do not need one round-trip per entry.
	cache map[string]files.Entry
}

type StoreOption func(*Store)

func WithCredentials(user, password string) StoreOption {
	return func(s *Store) {
		s.user = user
		s.password = password
	}
}

func WithRoot(root string) StoreOption {
	return func(s *Store) {
		s.root = path.Clean("/" + strings.TrimPrefix(root, "/"))
	}
}

// WithTLS enables explicit (AUTH TLS) or implicit TLS.
func WithTLS(explicit, implicit bool) StoreOption {
	return func(s *Store) {
		s.explicit = explicit
		s.implicit = implicit
	}
}

func NewStore(host string, o ...StoreOption) *Store {
	s := &Store{
		host:     host,
		root:     "/",
		user:     anonymousUser,
		password: anonymousUser,
		cache:    make(map[string]files.Entry),
	}
	for _, opt := range o {
		opt(s)
	}
	return s
}

func (s *Store) Type() string { return typeTag }

func (s *Store) Root() string { return s.root }

func (s *Store) RootTitle() string {
	return typeTag + "://" + s.host
}

func (s *Store) connect(ctx context.Context) (ftpConn, error) {
	if s.conn != nil {
		return s.conn, nil
	}
	host, port, err := net.SplitHostPort(s.host)
	if err != nil {
		host = s.host
		port = "21"
	}
	addr := net.JoinHostPort(host, port)
	options := []ftp.DialOption{
		ftp.DialWithContext(ctx),
		ftp.DialWithTimeout(5 * time.Second),
	}
	if s.implicit {
		options = append(options, ftp.DialWithTLS(&tls.Config{ServerName: host}))
	}
	if s.explicit {
		options = append(options, ftp.DialWithExplicitTLS(&tls.Config{ServerName: host}))
	}
	conn, err := dial(addr, options...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to ftp server %s: %w", addr, err)
	}
	if err = conn.Login(s.user, s.password); err != nil {
		_ = conn.Quit()
		return nil, fmt.Errorf("failed to login to ftp server %s: %w", addr, err)
	}
	logger.Debug().Str("host", s.host).Str("user", s.user).Msg("ftp session established")
	s.conn = conn
	return conn, nil
}

// drop discards the session after a failed operation so the next call
// redials.
func (s *Store) drop() {
	if s.conn != nil {
		_ = s.conn.Quit()
		s.conn = nil
	}
}

func (s *Store) ListContents(ctx context.Context, dir string, recursive bool) ([]files.Entry, error) {
	conn, err := s.connect(ctx)
	if err != nil {
		return nil, err
	}
	ftpEntries, err := conn.List(dir)
	if err != nil {
		s.drop()
		return nil, fmt.Errorf("failed to list %s: %w", dir, err)
	}
	entries := make([]files.Entry, 0, len(ftpEntries))
	for _, ftpEntry := range ftpEntries {
		if ftpEntry.Name == "." || ftpEntry.Name == ".." {
			continue
		}
		entry := entryFromFTP(ftpEntry, s.AbsolutePath(dir, ftpEntry.Name))
		s.cache[entry.Path()] = entry
		entries = append(entries, entry)
		if recursive && entry.IsDir() {
			descendants, err := s.ListContents(ctx, entry.Path(), true)
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
	if s.PathExists(ctx, dir) {
		return fmt.Errorf("%s: %w", dir, files.ErrAlreadyExists)
	}
	conn, err := s.connect(ctx)
	if err != nil {
		return err
	}
	if err = conn.MakeDir(dir); err != nil {
		s.drop()
		return fmt.Errorf("failed to create folder %s: %w", dir, err)
	}
	return nil
}

func (s *Store) CreateFile(ctx context.Context, filePath string, contents []byte) error {
	conn, err := s.connect(ctx)
	if err != nil {
		return err
	}
	if err = conn.Stor(filePath, bytes.NewReader(contents)); err != nil {
		s.drop()
		return fmt.Errorf("failed to store %s: %w", filePath, err)
	}
	delete(s.cache, filePath)
	return nil
}

func (s *Store) PathExists(ctx context.Context, p string) bool {
	if _, ok := s.cache[p]; ok {
		return true
	}
	conn, err := s.connect(ctx)
	if err != nil {
		return false
	}
	// ChangeDir succeeds only for directories; fall back to listing
	// the parent for files.
	if conn.ChangeDir(p) == nil {
		return true
	}
	parent, name := path.Split(path.Clean(p))
	entries, err := s.ListContents(ctx, path.Clean(parent), false)
	if err != nil {
		return false
	}
	for _, entry := range entries {
		if entry.Name() == name {
			return true
		}
	}
	return false
}

// GoUp returns the parent path, staying at the mount root.
func (s *Store) GoUp(p string) string {
	clean := path.Clean(p)
	if clean == s.root || clean == "/" {
		return s.root
	}
	parent := path.Dir(clean)
	if !s.contains(parent) {
		return s.root
	}
	return parent
}

func (s *Store) contains(p string) bool {
	if p == s.root {
		return true
	}
	return strings.HasPrefix(p, strings.TrimSuffix(s.root, "/")+"/")
}

func (s *Store) IsHidden(p string) bool {
	return strings.HasPrefix(path.Base(p), ".")
}

func (s *Store) GetFileOrFolder(ctx context.Context, p string) (files.Entry, error) {
	if entry, ok := s.cache[p]; ok {
		return entry, nil
	}
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
	// Vanished between discovery and lookup.
	return files.NewFile(name, p), nil
}

func (s *Store) ReadFile(ctx context.Context, filePath string) ([]byte, error) {
	conn, err := s.connect(ctx)
	if err != nil {
		return nil, err
	}
	r, err := conn.Retr(filePath)
	if err != nil {
		s.drop()
		return nil, fmt.Errorf("failed to retrieve %s: %w", filePath, err)
	}
	defer func() {
		_ = r.Close()
	}()
	return io.ReadAll(r)
}

func (s *Store) Rename(ctx context.Context, oldPath, newPath string) error {
	conn, err := s.connect(ctx)
	if err != nil {
		return err
	}
	if err = conn.Rename(oldPath, newPath); err != nil {
		s.drop()
		return fmt.Errorf("failed to rename %s: %w", oldPath, err)
	}
	delete(s.cache, oldPath)
	return nil
}

func (s *Store) Delete(ctx context.Context, p string) error {
	conn, err := s.connect(ctx)
	if err != nil {
		return err
	}
	if err = conn.Delete(p); err != nil {
		// Directories need RMD instead of DELE.
		if rmErr := conn.RemoveDir(p); rmErr != nil {
			s.drop()
			return fmt.Errorf("failed to delete %s: %w", p, err)
		}
	}
	delete(s.cache, p)
	return nil
}

// Close quits the FTP session if one is open.
func (s *Store) Close() error {
	if s.conn == nil {
		return nil
	}
	err := s.conn.Quit()
	s.conn = nil
	return err
}

func entryFromFTP(e *ftp.Entry, fullPath string) files.Entry {
	var options []files.EntryOption
	if !e.Time.IsZero() {
		options = append(options, files.ModifiedAt(e.Time))
	}
	if e.Type == ftp.EntryTypeFolder {
		return files.NewFolder(e.Name, fullPath, options...)
	}
	options = append(options, files.Size(int64(e.Size)))
	return files.NewFile(e.Name, fullPath, options...)
}
