package gitlink

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Remote は Git リモート URL から取り出したホスト・オーナー・リポジトリです。
type Remote struct {
	Host   string
	Owner  string
	Repo   string
	Scheme string
}

// ParseRemote は remote.<name>.url の値を解析します。
// scp 形式（git@host:owner/repo.git）と ssh:// git:// http(s):// を受け付けます。
func ParseRemote(raw string) (Remote, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Remote{}, errors.New("empty remote url")
	}
	if !strings.Contains(raw, "://") {
		at := strings.Index(raw, "@")
		colon := strings.Index(raw, ":")
		if at < 0 || colon < at {
			return Remote{}, fmt.Errorf("unsupported remote url: %s", raw)
		}
		owner, repo, err := splitOwnerRepo(raw[colon+1:])
		if err != nil {
			return Remote{}, err
		}
		return Remote{Host: strings.ToLower(raw[at+1 : colon]), Owner: owner, Repo: repo}, nil
	}

	u, err := url.Parse(raw)
	if err != nil {
		return Remote{}, fmt.Errorf("invalid remote url: %w", err)
	}
	scheme := strings.ToLower(u.Scheme)
	switch scheme {
	case "ssh", "git":
		scheme = ""
	case "http", "https":
	default:
		return Remote{}, fmt.Errorf("unsupported remote url: %s", raw)
	}
	p, err := url.PathUnescape(u.Path)
	if err != nil {
		return Remote{}, fmt.Errorf("invalid remote path: %w", err)
	}
	owner, repo, err := splitOwnerRepo(p)
	if err != nil {
		return Remote{}, err
	}
	return Remote{Host: strings.ToLower(u.Host), Owner: owner, Repo: repo, Scheme: scheme}, nil
}

// splitOwnerRepo はパスの末尾 2 要素をオーナーとリポジトリとして返します。
func splitOwnerRepo(p string) (string, string, error) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(p), "\\", "/")
	cleaned = strings.Trim(cleaned, "/")
	cleaned = strings.TrimSuffix(cleaned, ".git")
	segments := strings.Split(cleaned, "/")
	if len(segments) < 2 {
		return "", "", errors.New("remote url must include owner and repo")
	}
	owner, repo := segments[len(segments)-2], segments[len(segments)-1]
	if owner == "" || repo == "" {
		return "", "", errors.New("invalid owner or repo in remote url")
	}
	return owner, repo, nil
}

// WebScheme はリンクに使うスキームです。http 以外はすべて https にします。
func (r Remote) WebScheme() string {
	if r.Scheme == "http" {
		return "http"
	}
	return "https"
}
