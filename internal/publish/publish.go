package publish

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"sort"
	"time"

	"github.com/pkg/sftp"
	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/knownhosts"

	"student-analytics/internal/concurrency"
)

// Config describes the static hosting target for report artifacts.
type Config struct {
	Host                  string
	Port                  int
	User                  string
	Pass                  string
	RemoteDir             string
	InsecureIgnoreHostKey bool

	// KnownHostsFile verifies the server key when InsecureIgnoreHostKey is
	// off. Empty means ~/.ssh/known_hosts.
	KnownHostsFile string

	// Compress writes brotli siblings (.br) of text artifacts before upload,
	// so the hosting surface can serve pre-compressed content.
	Compress bool
}

func (cfg Config) validate() error {
	if cfg.Host == "" || cfg.User == "" || cfg.Pass == "" {
		return fmt.Errorf("publish: missing env SFTP_HOST / SFTP_USER / SFTP_PASS")
	}
	return nil
}

func (cfg Config) withDefaults() Config {
	if cfg.Port <= 0 {
		cfg.Port = 22
	}
	if cfg.RemoteDir == "" {
		cfg.RemoteDir = "/"
	}
	return cfg
}

// UploadFile uploads a single local file under cfg.RemoteDir.
func UploadFile(ctx context.Context, cfg Config, localPath, remoteName string) error {
	if err := cfg.validate(); err != nil {
		return err
	}
	cfg = cfg.withDefaults()

	sshClient, sftpCli, err := connect(ctx, cfg)
	if err != nil {
		return err
	}
	defer sshClient.Close()
	defer sftpCli.Close()

	if err := sftpCli.MkdirAll(cfg.RemoteDir); err != nil {
		return fmt.Errorf("publish: mkdir %s: %w", cfg.RemoteDir, err)
	}
	return put(sftpCli, localPath, path.Join(cfg.RemoteDir, remoteName))
}

// UploadDir publishes every regular file in localDir (non-recursive) under
// cfg.RemoteDir and returns the remote names written. With cfg.Compress set,
// brotli siblings are generated in parallel first and uploaded too.
func UploadDir(ctx context.Context, cfg Config, localDir string) ([]string, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg = cfg.withDefaults()

	entries, err := os.ReadDir(localDir)
	if err != nil {
		return nil, fmt.Errorf("publish: read dir %s: %w", localDir, err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) == brExt {
			continue
		}
		files = append(files, filepath.Join(localDir, e.Name()))
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("publish: nothing to upload in %s", localDir)
	}

	if cfg.Compress {
		compressed, errs := concurrency.ProcessParallel(ctx, files, concurrency.DefaultOptions(),
			func(_ context.Context, _ int, file string) (string, error) {
				if !compressible(file) {
					return "", nil
				}
				return CompressFile(file)
			})
		if len(errs) > 0 {
			return nil, fmt.Errorf("publish: compress: %w", errs[0])
		}
		for _, c := range compressed {
			if c != "" {
				files = append(files, c)
			}
		}
	}

	sort.Strings(files)

	sshClient, sftpCli, err := connect(ctx, cfg)
	if err != nil {
		return nil, err
	}
	defer sshClient.Close()
	defer sftpCli.Close()

	if err := sftpCli.MkdirAll(cfg.RemoteDir); err != nil {
		return nil, fmt.Errorf("publish: mkdir %s: %w", cfg.RemoteDir, err)
	}

	var uploaded []string
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return uploaded, fmt.Errorf("publish: canceled: %w", err)
		}
		name := filepath.Base(file)
		if err := put(sftpCli, file, path.Join(cfg.RemoteDir, name)); err != nil {
			return uploaded, err
		}
		uploaded = append(uploaded, name)
	}

	return uploaded, nil
}

// hostKeyCallback verifies the server against known_hosts unless the config
// explicitly opts out.
func hostKeyCallback(cfg Config) (ssh.HostKeyCallback, error) {
	if cfg.InsecureIgnoreHostKey {
		return ssh.InsecureIgnoreHostKey(), nil
	}

	path := cfg.KnownHostsFile
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("publish: resolve known_hosts: %w", err)
		}
		path = filepath.Join(home, ".ssh", "known_hosts")
	}

	cb, err := knownhosts.New(path)
	if err != nil {
		return nil, fmt.Errorf("publish: load known_hosts %s: %w", path, err)
	}
	return cb, nil
}

// connect dials SSH under ctx control and opens an SFTP session.
func connect(ctx context.Context, cfg Config) (*ssh.Client, *sftp.Client, error) {
	cb, err := hostKeyCallback(cfg)
	if err != nil {
		return nil, nil, err
	}

	sshCfg := &ssh.ClientConfig{
		User:            cfg.User,
		Auth:            []ssh.AuthMethod{ssh.Password(cfg.Pass)},
		HostKeyCallback: cb,
		Timeout:         20 * time.Second,
	}

	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)

	type dialRes struct {
		client *ssh.Client
		err    error
	}
	ch := make(chan dialRes, 1)
	go func() {
		c, err := ssh.Dial("tcp", addr, sshCfg)
		ch <- dialRes{client: c, err: err}
	}()

	var sshClient *ssh.Client
	select {
	case <-ctx.Done():
		return nil, nil, fmt.Errorf("publish: dial canceled: %w", ctx.Err())
	case r := <-ch:
		if r.err != nil {
			return nil, nil, fmt.Errorf("publish: dial error: %w", r.err)
		}
		sshClient = r.client
	}

	sftpCli, err := sftp.NewClient(sshClient)
	if err != nil {
		sshClient.Close()
		return nil, nil, fmt.Errorf("publish: new sftp client: %w", err)
	}

	return sshClient, sftpCli, nil
}

func put(cli *sftp.Client, localPath, remotePath string) error {
	src, err := os.Open(localPath)
	if err != nil {
		return fmt.Errorf("publish: open local file: %w", err)
	}
	defer src.Close()

	dst, err := cli.Create(remotePath)
	if err != nil {
		return fmt.Errorf("publish: create remote file %s: %w", remotePath, err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return fmt.Errorf("publish: upload copy %s: %w", remotePath, err)
	}
	return nil
}
