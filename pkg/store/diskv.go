package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/peterbourgon/diskv/v3"

	"tableflip.dev/mindlog/pkg/chat"
	"tableflip.dev/mindlog/pkg/session"
)

// Persistence defines the persistence contract for journal documents. Loads
// never fail: missing or unreadable documents come back empty.
type Persistence interface {
	LoadSessions(ctx context.Context) []session.Session
	SaveSessions(ctx context.Context, sessions []session.Session) error
	LoadSummaries(ctx context.Context) map[string]string
	SaveSummaries(ctx context.Context, summaries map[string]string) error
	LoadThread(ctx context.Context, entryID string) []chat.Message
	SaveThread(ctx context.Context, entryID string, thread []chat.Message) error
	Threads(ctx context.Context) []string
	Clear(ctx context.Context) error
	Watch(ctx context.Context) (<-chan Event, error)
}

const (
	sessionsKey  = "sessions"
	summariesKey = "summaries"
	chatPrefix   = "chat"
	chatDir      = "chats"
	docExt       = ".json"
	// tempDir holds documents while they are written; finished documents are
	// renamed into place so readers never see a partial file.
	tempDir = ".tmp"
)

var warn = log.New(os.Stderr, "mindlog: ", 0)

// Load creates a Persistence backed by diskv using the provided config.
func Load(cfg Config) (Persistence, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}

	basePath := cfg.BasePath()
	if basePath == "" {
		return nil, errors.New("store: base path unknown")
	}
	return &persistence{d: diskv.New(diskv.Options{
		BasePath:          basePath,
		AdvancedTransform: keyToPathTransform,
		InverseTransform:  pathToKeyTransform,
		// Other processes write the same documents, so reads always hit disk.
		CacheSizeMax: 0,
		TempDir:      filepath.Join(basePath, tempDir),
	}), basePath: basePath}, nil
}

type persistence struct {
	d        *diskv.Diskv
	basePath string
}

// read decodes the document at key into target. It reports false when the
// document is missing or cannot be used.
func (p *persistence) read(key string, target any) bool {
	val, err := p.d.Read(key)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			warn.Printf("store: %s: %v", key, err)
		}
		return false
	}
	if len(val) == 0 {
		return false
	}
	if err := json.Unmarshal(val, target); err != nil {
		warn.Printf("store: %s: ignoring unreadable document: %v", key, err)
		return false
	}
	return true
}

func (p *persistence) write(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("store: encode %s: %w", key, err)
	}
	if err := p.d.Write(key, data); err != nil {
		return fmt.Errorf("store: write %s: %w", key, err)
	}
	return nil
}

func (p *persistence) LoadSessions(_ context.Context) []session.Session {
	var sessions []session.Session
	if !p.read(sessionsKey, &sessions) {
		return []session.Session{}
	}
	for i := range sessions {
		for j := range sessions[i].Entries {
			sessions[i].Entries[j].EnsureID(fmt.Sprintf("%d/%s/%d", i, sessions[i].ID, j))
		}
	}
	return session.Dedupe(sessions)
}

func (p *persistence) SaveSessions(_ context.Context, sessions []session.Session) error {
	if sessions == nil {
		sessions = []session.Session{}
	}
	return p.write(sessionsKey, sessions)
}

func (p *persistence) LoadSummaries(_ context.Context) map[string]string {
	summaries := make(map[string]string)
	if !p.read(summariesKey, &summaries) || summaries == nil {
		return make(map[string]string)
	}
	return summaries
}

func (p *persistence) SaveSummaries(_ context.Context, summaries map[string]string) error {
	if summaries == nil {
		summaries = map[string]string{}
	}
	return p.write(summariesKey, summaries)
}

func (p *persistence) LoadThread(_ context.Context, entryID string) []chat.Message {
	if entryID == "" {
		return nil
	}
	var thread []chat.Message
	if !p.read(threadKey(entryID), &thread) {
		return nil
	}
	return thread
}

func (p *persistence) SaveThread(_ context.Context, entryID string, thread []chat.Message) error {
	if entryID == "" {
		return errors.New("store: entry id required")
	}
	if thread == nil {
		thread = []chat.Message{}
	}
	return p.write(threadKey(entryID), thread)
}

// Threads lists the entry IDs that have a chat thread.
func (p *persistence) Threads(ctx context.Context) []string {
	ids := make([]string, 0)
	for key := range p.d.KeysPrefix(chatPrefix+"-", ctx.Done()) {
		ids = append(ids, strings.TrimPrefix(key, chatPrefix+"-"))
	}
	sort.Strings(ids)
	return ids
}

// Clear erases every document. Callers confirm with the user first. The base
// directory itself stays so watchers on it keep working.
func (p *persistence) Clear(ctx context.Context) error {
	keys := []string{sessionsKey, summariesKey}
	for _, id := range p.Threads(ctx) {
		keys = append(keys, threadKey(id))
	}
	for _, key := range keys {
		if err := p.d.Erase(key); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("store: clear %s: %w", key, err)
		}
	}
	return nil
}

func threadKey(entryID string) string {
	return chatPrefix + "-" + entryID
}

// keyToPathTransform places chat threads under chats/ and keeps the session
// and summary documents at the top of the store.
func keyToPathTransform(key string) *diskv.PathKey {
	if kind, id, ok := strings.Cut(key, "-"); ok && kind == chatPrefix {
		return &diskv.PathKey{
			Path:     []string{chatDir},
			FileName: id + docExt,
		}
	}
	return &diskv.PathKey{
		Path:     []string{},
		FileName: key + docExt,
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	name := strings.TrimSuffix(pathKey.FileName, docExt)
	if len(pathKey.Path) > 0 && pathKey.Path[0] == chatDir {
		return threadKey(name)
	}
	return name
}
