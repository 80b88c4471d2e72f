package knowledge

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doc(t *testing.T, raw string) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(raw), &m))
	return m
}

func TestMerge_RightBiasedScalars(t *testing.T) {
	out := Merge(doc(t, `{"x": 1}`), doc(t, `{"x": 2}`))
	assert.EqualValues(t, 2, out["x"])
}

func TestMerge_ConcatenatesSequences(t *testing.T) {
	out := Merge(doc(t, `{"arr": [1, 2]}`), doc(t, `{"arr": [3]}`))
	assert.Equal(t, []any{float64(1), float64(2), float64(3)}, out["arr"])
}

func TestMerge_EmptySecondIsNoOp(t *testing.T) {
	a := doc(t, `{"club": {"name": "LCAC", "projects": [{"title": "Food Drive"}]}}`)
	out := Merge(a, map[string]any{})
	assert.Equal(t, a, out)
}

func TestMerge_UnionsNestedMappings(t *testing.T) {
	a := doc(t, `{"club": {"name": "LCAC", "motto": "Born to Serve"}}`)
	b := doc(t, `{"club": {"motto": "We Serve"}, "leo_general": {"what_is_leo": "Youth clubs."}}`)

	out := Merge(a, b)

	club := out["club"].(map[string]any)
	assert.Equal(t, "LCAC", club["name"])
	assert.Equal(t, "We Serve", club["motto"])
	assert.Equal(t, "Youth clubs.", out["leo_general"].(map[string]any)["what_is_leo"])
}

func TestMerge_DoesNotMutateInputs(t *testing.T) {
	a := doc(t, `{"club": {"name": "LCAC"}}`)
	b := doc(t, `{"club": {"motto": "Born to Serve"}}`)

	Merge(a, b)

	assert.NotContains(t, a["club"].(map[string]any), "motto")
	assert.NotContains(t, b["club"].(map[string]any), "name")
}

func writeDoc(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestStore_LoadMergesInOrder(t *testing.T) {
	dir := t.TempDir()
	first := writeDoc(t, dir, "club.json", `{"club": {"name": "LCAC", "motto": "Draft"}}`)
	second := writeDoc(t, dir, "general.json", `{"club": {"motto": "Born to Serve"}, "leo_general": {"age_range": "12 to 30"}}`)

	store := NewStore(time.Minute)
	merged := store.Load([]string{first, second})

	assert.Equal(t, "LCAC", merged.Typed.Club.Name)
	assert.Equal(t, "Born to Serve", merged.Typed.Club.Motto)
	assert.Equal(t, "12 to 30", merged.Typed.LeoGeneral.AgeRange)
}

func TestStore_LoadSkipsMissingAndMalformed(t *testing.T) {
	dir := t.TempDir()
	good := writeDoc(t, dir, "good.json", `{"club": {"name": "LCAC"}}`)
	bad := writeDoc(t, dir, "bad.json", `{not json`)

	store := NewStore(time.Minute)
	merged := store.Load([]string{filepath.Join(dir, "missing.json"), bad, good})

	assert.Equal(t, "LCAC", merged.Typed.Club.Name)
}

func TestStore_LoadReturnsCachedSnapshot(t *testing.T) {
	dir := t.TempDir()
	path := writeDoc(t, dir, "club.json", `{"club": {"name": "LCAC"}}`)

	store := NewStore(time.Minute)
	first := store.Load([]string{path})

	// Changing the file must not affect the cached snapshot.
	writeDoc(t, dir, "club.json", `{"club": {"name": "Changed"}}`)
	second := store.Load([]string{path})

	assert.Same(t, first, second)
	assert.Equal(t, "LCAC", second.Typed.Club.Name)
}

func TestStore_LoadEmptyPathList(t *testing.T) {
	store := NewStore(time.Minute)
	merged := store.Load(nil)

	assert.Empty(t, merged.Raw)
	assert.Equal(t, "", merged.Typed.Club.Name)
}

func TestStore_UnknownKeysPassThrough(t *testing.T) {
	dir := t.TempDir()
	path := writeDoc(t, dir, "extra.json", `{"club": {"name": "LCAC"}, "custom_section": {"anything": true}}`)

	store := NewStore(time.Minute)
	merged := store.Load([]string{path})

	assert.Contains(t, merged.Raw, "custom_section")
	assert.Equal(t, "LCAC", merged.Typed.Club.Name)
}
