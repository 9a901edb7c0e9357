package store

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tom26757207-cyber/line-archive/internal/session"
)

func testSession(t *testing.T, name, content string) *session.Session {
	t.Helper()
	raw := []byte("2024/05/01（三）\n上午09:15 王小姐 " + content + "\n")
	s, err := session.FromTranscript(raw, name)
	require.NoError(t, err)
	return s
}

func TestOpen_EmptyStore(t *testing.T) {
	arch, err := Open(NewMemoryStore())
	require.NoError(t, err)

	assert.Equal(t, 0, arch.Len())
	_, ok := arch.Active()
	assert.False(t, ok)
}

func TestInsert_NewestFirst(t *testing.T) {
	arch, err := Open(NewMemoryStore())
	require.NoError(t, err)

	s1 := testSession(t, "a.txt", "第一份")
	s2 := testSession(t, "b.txt", "第二份")
	require.NoError(t, arch.Insert(s1))
	require.NoError(t, arch.Insert(s2))

	sessions := arch.Sessions()
	require.Len(t, sessions, 2)
	assert.Equal(t, s2.ID, sessions[0].ID)
	assert.Equal(t, s1.ID, sessions[1].ID)

	active, ok := arch.Active()
	require.True(t, ok)
	assert.Equal(t, s2.ID, active.ID)
}

func TestInsert_ReplaceAndPromote(t *testing.T) {
	arch, err := Open(NewMemoryStore())
	require.NoError(t, err)

	s1 := testSession(t, "a.txt", "第一份")
	s2 := testSession(t, "b.txt", "第二份")
	require.NoError(t, arch.Insert(s1))
	require.NoError(t, arch.Insert(s2))

	// re-insert a session with s1's identifier but new content
	replacement := testSession(t, "a2.txt", "更新後的內容")
	replacement.ID = s1.ID
	require.NoError(t, arch.Insert(replacement))

	sessions := arch.Sessions()
	require.Len(t, sessions, 2)
	assert.Equal(t, s1.ID, sessions[0].ID)
	assert.Equal(t, "a2.txt", sessions[0].FileName)
	assert.Equal(t, s2.ID, sessions[1].ID)
}

func TestDelete(t *testing.T) {
	arch, err := Open(NewMemoryStore())
	require.NoError(t, err)

	s := testSession(t, "a.txt", "內容")
	require.NoError(t, arch.Insert(s))

	require.NoError(t, arch.Delete(s.ID))
	assert.Equal(t, 0, arch.Len())

	// deleting the active session clears the selection
	_, ok := arch.Active()
	assert.False(t, ok)

	assert.ErrorIs(t, arch.Delete(s.ID), ErrNotFound)
}

func TestDelete_KeepsActiveWhenOtherRemoved(t *testing.T) {
	arch, err := Open(NewMemoryStore())
	require.NoError(t, err)

	s1 := testSession(t, "a.txt", "一")
	s2 := testSession(t, "b.txt", "二")
	require.NoError(t, arch.Insert(s1))
	require.NoError(t, arch.Insert(s2))

	require.NoError(t, arch.Delete(s1.ID))

	active, ok := arch.Active()
	require.True(t, ok)
	assert.Equal(t, s2.ID, active.ID)
}

func TestPersistence_RoundTrip(t *testing.T) {
	blob := NewMemoryStore()

	arch, err := Open(blob)
	require.NoError(t, err)
	s := testSession(t, "a.txt", "費用的問題")
	require.NoError(t, arch.Insert(s))

	// a fresh archive over the same blob sees the full state
	reopened, err := Open(blob)
	require.NoError(t, err)
	require.Equal(t, 1, reopened.Len())

	got, ok := reopened.Get(s.ID)
	require.True(t, ok)
	assert.Equal(t, s, got)

	active, ok := reopened.Active()
	require.True(t, ok)
	assert.Equal(t, s.ID, active.ID)
}

func TestSetActive(t *testing.T) {
	blob := NewMemoryStore()
	arch, err := Open(blob)
	require.NoError(t, err)

	s1 := testSession(t, "a.txt", "一")
	s2 := testSession(t, "b.txt", "二")
	require.NoError(t, arch.Insert(s1))
	require.NoError(t, arch.Insert(s2))

	require.NoError(t, arch.SetActive(s1.ID))

	reopened, err := Open(blob)
	require.NoError(t, err)
	active, ok := reopened.Active()
	require.True(t, ok)
	assert.Equal(t, s1.ID, active.ID)

	assert.ErrorIs(t, arch.SetActive("missing"), ErrNotFound)
}

// failingStore accepts reads but rejects writes.
type failingStore struct{ MemoryStore }

func (f *failingStore) Set(data []byte) error { return errors.New("disk full") }

func TestMutations_RollBackOnPersistFailure(t *testing.T) {
	blob := &failingStore{}
	arch, err := Open(blob)
	require.NoError(t, err)

	s := testSession(t, "a.txt", "內容")
	require.Error(t, arch.Insert(s))
	assert.Equal(t, 0, arch.Len())
}
