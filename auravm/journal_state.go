// (c) 2019-2020, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package auravm

import (
	"encoding/binary"

	"github.com/ava-labs/avalanchego/cache"
	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/ids"
)

const (
	journalCacheSize = 2048
)

var (
	journalHeadKey = []byte{0xff} // entry keys are 8 bytes, no collision

	_ JournalState = (*journalState)(nil)
)

// JournalEntry records one applied state transition. Entries are written in
// the same database version as the transition itself, so an aborted
// operation never journals.
type JournalEntry struct {
	Seq       uint64      `serialize:"true" json:"seq"`
	Timestamp int64       `serialize:"true" json:"timestamp"`
	Method    string      `serialize:"true" json:"method"`
	Caller    ids.ShortID `serialize:"true" json:"caller"`
	Account   ids.ShortID `serialize:"true" json:"account"`
	Token     ids.ID      `serialize:"true" json:"token"`
	Amount    uint64      `serialize:"true" json:"amount"`
}

// JournalState is an append-only log of applied operations, keyed by
// sequence number.
type JournalState interface {
	GetEntry(seq uint64) (*JournalEntry, error)
	Append(entry *JournalEntry) error
	LastSeq() (uint64, error)

	ClearCache()
}

type journalState struct {
	entryCache cache.Cacher
	journalDB  database.Database
}

func NewJournalState(db database.Database) JournalState {
	return &journalState{
		entryCache: &cache.LRU{Size: journalCacheSize},
		journalDB:  db,
	}
}

func (s *journalState) GetEntry(seq uint64) (*JournalEntry, error) {
	if entryIntf, cached := s.entryCache.Get(seq); cached {
		return entryIntf.(*JournalEntry), nil
	}

	b, err := s.journalDB.Get(journalEntryKey(seq))
	if err != nil {
		return nil, err
	}

	entry := &JournalEntry{}
	if _, err := Codec.Unmarshal(b, entry); err != nil {
		return nil, err
	}

	s.entryCache.Put(seq, entry)
	return entry, nil
}

// Append assigns the entry the next sequence number and persists it.
func (s *journalState) Append(entry *JournalEntry) error {
	last, err := s.LastSeq()
	if err != nil {
		return err
	}
	entry.Seq = last + 1

	b, err := Codec.Marshal(CodecVersion, entry)
	if err != nil {
		return err
	}
	if err := s.journalDB.Put(journalEntryKey(entry.Seq), b); err != nil {
		return err
	}

	head := make([]byte, 8)
	binary.BigEndian.PutUint64(head, entry.Seq)
	if err := s.journalDB.Put(journalHeadKey, head); err != nil {
		return err
	}

	s.entryCache.Put(entry.Seq, entry)
	return nil
}

func (s *journalState) LastSeq() (uint64, error) {
	b, err := s.journalDB.Get(journalHeadKey)
	if err == database.ErrNotFound {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(b), nil
}

func (s *journalState) ClearCache() {
	s.entryCache.Flush()
}

func journalEntryKey(seq uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, seq)
	return key
}
