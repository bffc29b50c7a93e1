// Package gitlink は診断の位置をコードホスト上の blob URL に変換します。
package gitlink

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/phyten/todolint/internal/engine"
)

// Options は Detect の入力です。Remote が空なら origin を使います。
type Options struct {
	RepoDir string
	Remote  string
	// Scheme は http / https のどちらかで、リモート URL のスキームより優先します。
	Scheme string
	Runner Runner
}

// Linker は固定したコミットに対するリンクを作ります。
// prefix は RepoDir の git トップレベルからの相対パスで、ファイルパスの前に付けます。
type Linker struct {
	remote Remote
	ref    string
	prefix string
}

// New は解析済みの Remote と ref（コミット SHA など）から Linker を作ります。
func New(remote Remote, ref string) *Linker {
	return &Linker{remote: remote, ref: strings.TrimSpace(ref)}
}

// Detect はリポジトリのリモート URL と HEAD のコミットを git から取得します。
func Detect(ctx context.Context, opts Options) (*Linker, error) {
	runner := opts.Runner
	if runner == nil {
		runner = CommandRunner{}
	}
	name := strings.TrimSpace(opts.Remote)
	if name == "" {
		name = "origin"
	}
	key := fmt.Sprintf("remote.%s.url", name)
	raw, err := git(ctx, runner, opts.RepoDir, "config", "--get", key)
	if err != nil {
		return nil, err
	}
	if raw == "" {
		return nil, fmt.Errorf("%s is empty", key)
	}
	remote, err := ParseRemote(raw)
	if err != nil {
		return nil, err
	}
	switch s := strings.ToLower(strings.TrimSpace(opts.Scheme)); s {
	case "http", "https":
		remote.Scheme = s
	}
	sha, err := git(ctx, runner, opts.RepoDir, "rev-parse", "HEAD")
	if err != nil {
		return nil, err
	}
	prefix, err := git(ctx, runner, opts.RepoDir, "rev-parse", "--show-prefix")
	if err != nil {
		return nil, err
	}
	l := New(remote, sha)
	l.prefix = strings.Trim(prefix, "/")
	return l, nil
}

func git(ctx context.Context, runner Runner, dir string, args ...string) (string, error) {
	stdout, stderr, err := runner.Run(ctx, dir, "git", args...)
	if err != nil {
		if IsNotFound(err) {
			return "", fmt.Errorf("git is not installed: %w", err)
		}
		if msg := strings.TrimSpace(string(stderr)); msg != "" {
			return "", fmt.Errorf("git %s: %w: %s", strings.Join(args, " "), err, msg)
		}
		return "", fmt.Errorf("git %s: %w", strings.Join(args, " "), err)
	}
	return strings.TrimSpace(string(stdout)), nil
}

// Blob は file の line 行目を指す URL を返します。Markdown は描画されないよう ?plain=1 を付けます。
func (l *Linker) Blob(file string, line int) string {
	if l == nil || l.ref == "" || file == "" || line <= 0 {
		return ""
	}
	segments := strings.Split(path.Join(l.prefix, file), "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	query := ""
	if lower := strings.ToLower(file); strings.HasSuffix(lower, ".md") || strings.HasSuffix(lower, ".markdown") {
		query = "?plain=1"
	}
	return fmt.Sprintf("%s://%s/%s/%s/blob/%s/%s%s#L%d",
		l.remote.WebScheme(), strings.TrimSuffix(l.remote.Host, "/"),
		url.PathEscape(l.remote.Owner), url.PathEscape(l.remote.Repo),
		l.ref, path.Join(segments...), query, line)
}

// Annotate は items の URL を埋めます。
func (l *Linker) Annotate(items []engine.Item) {
	for i := range items {
		items[i].URL = l.Blob(items[i].File, items[i].Line)
	}
}
