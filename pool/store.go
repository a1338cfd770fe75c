package pool

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/luxfi/sui-arb/model"
)

// FileStore is the per-protocol append-only text store from spec.md
// §6: one pool per line, "protocol|pool_id|tokens_json|extra_json".
type FileStore struct {
	dir string
	mu  sync.Mutex
}

// NewFileStore returns a store rooted at dir (one file per protocol,
// named "<protocol>.pools").
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

func (s *FileStore) pathFor(protocol model.Protocol) string {
	return fmt.Sprintf("%s/%s.pools", s.dir, protocol)
}

// AppendBatch flushes a batch of newly discovered pools for protocol.
// A write failure is Fatal per spec.md §4.A.
func (s *FileStore) AppendBatch(protocol model.Protocol, pools []model.Pool) error {
	if len(pools) == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.OpenFile(s.pathFor(protocol), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, p := range pools {
		line, err := encodePoolLine(p)
		if err != nil {
			return err
		}
		if _, err := w.WriteString(line + "\n"); err != nil {
			return err
		}
	}
	return w.Flush()
}

// LoadAll reads every persisted pool for protocol. A malformed line is
// logged by the caller and skipped (best-effort decoding, spec.md
// §4.A).
func (s *FileStore) LoadAll(protocol model.Protocol) ([]model.Pool, []error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.Open(s.pathFor(protocol))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, []error{err}
	}
	defer f.Close()

	var pools []model.Pool
	var errs []error
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 8*1024*1024)
	for sc.Scan() {
		line := sc.Text()
		if line == "" {
			continue
		}
		p, err := decodePoolLine(line)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		pools = append(pools, p)
	}
	if err := sc.Err(); err != nil {
		errs = append(errs, err)
	}
	return pools, errs
}

func encodePoolLine(p model.Pool) (string, error) {
	tokens := make([]string, len(p.Tokens))
	for i, t := range p.Tokens {
		tokens[i] = string(t)
	}
	tokensJSON, err := json.Marshal(tokens)
	if err != nil {
		return "", err
	}
	extraJSON, err := json.Marshal(p.Extra)
	if err != nil {
		return "", err
	}
	return strings.Join([]string{
		string(p.Protocol),
		p.PoolID.String(),
		string(tokensJSON),
		string(extraJSON),
	}, "|"), nil
}

func decodePoolLine(line string) (model.Pool, error) {
	parts := strings.SplitN(line, "|", 4)
	if len(parts) != 4 {
		return model.Pool{}, fmt.Errorf("malformed pool line: wrong field count")
	}
	id, err := model.ObjectIDFromHex(parts[1])
	if err != nil {
		return model.Pool{}, fmt.Errorf("malformed pool line: %w", err)
	}
	var tokenStrs []string
	if err := json.Unmarshal([]byte(parts[2]), &tokenStrs); err != nil {
		return model.Pool{}, fmt.Errorf("malformed pool line: tokens: %w", err)
	}
	tokens := make([]model.Coin, len(tokenStrs))
	for i, t := range tokenStrs {
		tokens[i] = model.Coin(t)
	}
	var extra model.PoolExtra
	if err := json.Unmarshal([]byte(parts[3]), &extra); err != nil {
		return model.Pool{}, fmt.Errorf("malformed pool line: extra: %w", err)
	}
	p := model.Pool{
		Protocol: model.Protocol(parts[0]),
		PoolID:   id,
		Tokens:   tokens,
		Extra:    extra,
	}
	return p, p.Validate()
}
