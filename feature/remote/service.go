package remote

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"lcftrans/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// Options controls what a sync run may touch.
type Options struct {
	// Delete also removes units missing on the source side.
	Delete bool
}

// Service mirrors the unit directory against an object storage bucket.
type Service struct {
	client storage.Client
	bucket string
	prefix string
	dir    string
	logger *zap.Logger
}

// NewService creates a sync service for one directory and bucket.
func NewService(client storage.Client, bucket, prefix, dir string, logger *zap.Logger) *Service {
	return &Service{client: client, bucket: bucket, prefix: prefix, dir: dir, logger: logger}
}

// fileState is the comparable identity of one unit file.
type fileState struct {
	size int64
	md5  string
}

// differs compares two file states. Sizes decide first, equally sized
// files fall back to the content hash when both sides have one.
func differs(a, b fileState) bool {
	if a.size != b.size {
		return true
	}
	if a.md5 == "" || b.md5 == "" {
		return false
	}
	return a.md5 != b.md5
}

// EnsureBucket creates the target bucket if it does not exist yet.
func (s *Service) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket: %w", err)
	}
	if exists {
		return nil
	}
	if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create bucket %s: %w", s.bucket, err)
	}
	s.logger.Info("Created bucket", zap.String("bucket", s.bucket))
	return nil
}

// RequireBucket fails when the target bucket does not exist.
func (s *Service) RequireBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket: %w", err)
	}
	if !exists {
		return fmt.Errorf("bucket %s does not exist", s.bucket)
	}
	return nil
}

// PlanPush compares the local directory against the bucket and plans
// the uploads that would bring the bucket up to date.
func (s *Service) PlanPush(ctx context.Context, opts Options) (*Plan, error) {
	local, err := s.listLocal()
	if err != nil {
		return nil, err
	}
	remote, err := s.listRemote(ctx)
	if err != nil {
		return nil, err
	}

	plan := &Plan{Direction: "push", Bucket: s.bucket, Prefix: s.prefix}
	for _, name := range sortedKeys(local) {
		remoteState, ok := remote[name]
		switch {
		case !ok:
			plan.Actions = append(plan.Actions, Action{Type: ActionUpload, Unit: name, Reason: "missing remotely"})
		case differs(local[name], remoteState):
			plan.Actions = append(plan.Actions, Action{Type: ActionUpload, Unit: name, Reason: "content differs"})
		}
	}
	if opts.Delete {
		for _, name := range sortedKeys(remote) {
			if _, ok := local[name]; !ok {
				plan.Actions = append(plan.Actions, Action{Type: ActionDeleteRemote, Unit: name, Reason: "missing locally"})
			}
		}
	}
	return plan, nil
}

// PlanPull compares the bucket against the local directory and plans
// the downloads that would bring the directory up to date. A missing
// local directory counts as empty.
func (s *Service) PlanPull(ctx context.Context, opts Options) (*Plan, error) {
	local, err := s.listLocal()
	if errors.Is(err, fs.ErrNotExist) {
		local = map[string]fileState{}
	} else if err != nil {
		return nil, err
	}
	remote, err := s.listRemote(ctx)
	if err != nil {
		return nil, err
	}

	plan := &Plan{Direction: "pull", Bucket: s.bucket, Prefix: s.prefix}
	for _, name := range sortedKeys(remote) {
		localState, ok := local[name]
		switch {
		case !ok:
			plan.Actions = append(plan.Actions, Action{Type: ActionDownload, Unit: name, Reason: "missing locally"})
		case differs(remote[name], localState):
			plan.Actions = append(plan.Actions, Action{Type: ActionDownload, Unit: name, Reason: "content differs"})
		}
	}
	if opts.Delete {
		for _, name := range sortedKeys(local) {
			if _, ok := remote[name]; !ok {
				plan.Actions = append(plan.Actions, Action{Type: ActionDeleteLocal, Unit: name, Reason: "missing remotely"})
			}
		}
	}
	return plan, nil
}

// Result counts what an apply run actually did.
type Result struct {
	Uploaded   int `json:"uploaded"`
	Downloaded int `json:"downloaded"`
	Deleted    int `json:"deleted"`
}

// Apply executes a plan. Remote deletions are batched at the end.
func (s *Service) Apply(ctx context.Context, plan *Plan) (Result, error) {
	var res Result
	var removals []minio.ObjectInfo

	for _, action := range plan.Actions {
		switch action.Type {
		case ActionUpload:
			if err := s.upload(ctx, action.Unit); err != nil {
				return res, err
			}
			res.Uploaded++
		case ActionDownload:
			if err := s.download(ctx, action.Unit); err != nil {
				return res, err
			}
			res.Downloaded++
		case ActionDeleteRemote:
			removals = append(removals, minio.ObjectInfo{Key: s.objectName(action.Unit)})
		case ActionDeleteLocal:
			if err := os.Remove(filepath.Join(s.dir, action.Unit)); err != nil {
				return res, fmt.Errorf("failed to delete %s: %w", action.Unit, err)
			}
			res.Deleted++
		}
	}

	if len(removals) > 0 {
		deleted, err := s.removeBatch(ctx, removals)
		res.Deleted += deleted
		if err != nil {
			return res, err
		}
	}
	return res, nil
}

func (s *Service) upload(ctx context.Context, unit string) error {
	file := filepath.Join(s.dir, unit)
	f, err := os.Open(file)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", file, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", file, err)
	}

	_, err = s.client.PutObject(ctx, s.bucket, s.objectName(unit), f, info.Size(), minio.PutObjectOptions{
		ContentType: "text/plain; charset=utf-8",
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", unit, err)
	}
	s.logger.Info("Uploaded unit", zap.String("unit", unit))
	return nil
}

func (s *Service) download(ctx context.Context, unit string) error {
	obj, err := s.client.GetObject(ctx, s.bucket, s.objectName(unit), minio.GetObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to fetch %s: %w", unit, err)
	}
	defer obj.Close()

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", s.dir, err)
	}

	file := filepath.Join(s.dir, unit)
	f, err := os.Create(file)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", file, err)
	}

	if _, err := io.Copy(f, obj); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", file, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", file, err)
	}
	s.logger.Info("Downloaded unit", zap.String("unit", unit))
	return nil
}

// removeBatch deletes objects through the batch API and drains the
// error channel, so partial failures still report what went through.
func (s *Service) removeBatch(ctx context.Context, objects []minio.ObjectInfo) (int, error) {
	objectsCh := make(chan minio.ObjectInfo, len(objects))
	for _, obj := range objects {
		objectsCh <- obj
	}
	close(objectsCh)

	failed := 0
	for rmErr := range s.client.RemoveObjects(ctx, s.bucket, objectsCh, minio.RemoveObjectsOptions{}) {
		failed++
		s.logger.Error("Failed to remove object", zap.String("object", rmErr.ObjectName), zap.Error(rmErr.Err))
	}
	if failed > 0 {
		return len(objects) - failed, fmt.Errorf("failed to remove %d of %d objects", failed, len(objects))
	}
	return len(objects), nil
}

func (s *Service) listLocal() (map[string]fileState, error) {
	dirEntries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read unit directory: %w", err)
	}

	states := make(map[string]fileState)
	for _, de := range dirEntries {
		name := de.Name()
		if de.IsDir() || !strings.EqualFold(filepath.Ext(name), ".po") {
			continue
		}
		state, err := localState(filepath.Join(s.dir, name))
		if err != nil {
			return nil, err
		}
		states[name] = state
	}
	return states, nil
}

func localState(file string) (fileState, error) {
	f, err := os.Open(file)
	if err != nil {
		return fileState{}, fmt.Errorf("failed to open %s: %w", file, err)
	}
	defer f.Close()

	h := md5.New()
	n, err := io.Copy(h, f)
	if err != nil {
		return fileState{}, fmt.Errorf("failed to hash %s: %w", file, err)
	}
	return fileState{size: n, md5: hex.EncodeToString(h.Sum(nil))}, nil
}

func (s *Service) listRemote(ctx context.Context) (map[string]fileState, error) {
	prefix := s.prefix
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}

	states := make(map[string]fileState)
	for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{Prefix: prefix, Recursive: true}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list bucket: %w", obj.Err)
		}
		name := strings.TrimPrefix(obj.Key, prefix)
		if name == "" || strings.Contains(name, "/") || !strings.EqualFold(path.Ext(name), ".po") {
			continue
		}
		states[name] = fileState{size: obj.Size, md5: etagMD5(obj.ETag)}
	}
	return states, nil
}

// etagMD5 extracts the content hash from an ETag. Multipart uploads
// carry a compound tag that cannot be compared, those yield "".
func etagMD5(etag string) string {
	etag = strings.Trim(etag, `"`)
	if etag == "" || strings.Contains(etag, "-") {
		return ""
	}
	return etag
}

func (s *Service) objectName(unit string) string {
	if s.prefix == "" {
		return unit
	}
	return path.Join(s.prefix, unit)
}

func sortedKeys(m map[string]fileState) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
