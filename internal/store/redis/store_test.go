package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrSnakeDoc/qrhist/internal/domain"
	"github.com/MrSnakeDoc/qrhist/internal/settings"
)

func newTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewStore(client), mr
}

func testRecord(id string) *domain.Record {
	created := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	return &domain.Record{
		ID:        id,
		Kind:      domain.KindWifi,
		Payload:   "WIFI:S:Net;T:WPA;P:pw;;",
		Source:    domain.SourceImport,
		CreatedAt: created,
		UpdatedAt: created,
	}
}

func TestSaveAndGetRecord(t *testing.T) {
	s, mr := newTestStore(t)
	ctx := context.Background()

	removed := testRecord("a").Removed(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), domain.RemovedByUser)
	require.NoError(t, s.SaveRecord(ctx, removed))

	got, err := s.GetRecord(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, removed.ID, got.ID)
	assert.Equal(t, removed.Kind, got.Kind)
	assert.Equal(t, removed.Payload, got.Payload)
	assert.True(t, got.Disabled)
	assert.Equal(t, domain.RemovedByUser, got.RemovedBy)
	assert.True(t, got.UpdatedAt.Equal(removed.UpdatedAt))
	assert.True(t, got.CreatedAt.Equal(removed.CreatedAt))

	ok, err := mr.SIsMember(KeyAllRecords, "a")
	require.NoError(t, err)
	assert.True(t, ok, "id should be indexed in the records set")
	assert.Equal(t, DefaultRecordTTL, mr.TTL(RecordKey("a")))
}

func TestGetRecordNotFound(t *testing.T) {
	s, _ := newTestStore(t)

	_, err := s.GetRecord(context.Background(), "missing")
	require.ErrorIs(t, err, ErrRecordNotFound)
}

func TestSaveRecordsManyAndGetAll(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveRecordsMany(ctx, nil))
	require.NoError(t, s.SaveRecordsMany(ctx, []*domain.Record{testRecord("a"), testRecord("b"), testRecord("c")}))

	all, err := s.GetAllRecords(ctx)
	require.NoError(t, err)

	ids := make([]string, 0, len(all))
	for _, r := range all {
		ids = append(ids, r.ID)
	}
	assert.ElementsMatch(t, []string{"a", "b", "c"}, ids)
}

func TestGetAllRecordsPrunesExpiredIDs(t *testing.T) {
	s, mr := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveRecord(ctx, testRecord("old")))
	mr.FastForward(DefaultRecordTTL + time.Minute)
	require.NoError(t, s.SaveRecord(ctx, testRecord("fresh")))

	all, err := s.GetAllRecords(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "fresh", all[0].ID)

	members, err := mr.Members(KeyAllRecords)
	require.NoError(t, err)
	assert.Equal(t, []string{"fresh"}, members)
}

func TestGetAllRecordsEmpty(t *testing.T) {
	s, _ := newTestStore(t)

	all, err := s.GetAllRecords(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestDeleteRecord(t *testing.T) {
	s, mr := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveRecord(ctx, testRecord("a")))
	require.NoError(t, s.DeleteRecord(ctx, "a"))

	assert.False(t, mr.Exists(RecordKey("a")))
	ok, err := mr.SIsMember(KeyAllRecords, "a")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestUsageStats(t *testing.T) {
	s, mr := newTestStore(t)
	ctx := context.Background()

	stats, err := s.GetUsageStats(ctx)
	require.NoError(t, err)
	assert.Empty(t, stats)

	require.NoError(t, s.IncrementActionUsage(ctx, string(domain.EffectOpenURL)))
	require.NoError(t, s.IncrementActionUsage(ctx, string(domain.EffectOpenURL)))
	require.NoError(t, s.IncrementActionUsage(ctx, string(domain.EffectCopyText)))
	mr.HSet(KeyUsage, "garbage", "not-a-number")

	stats, err = s.GetUsageStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{
		string(domain.EffectOpenURL):  2,
		string(domain.EffectCopyText): 1,
	}, stats)
}

func TestSettingsRoundTrip(t *testing.T) {
	s, mr := newTestStore(t)
	ctx := context.Background()

	got, err := s.LoadSettings(ctx)
	require.NoError(t, err)
	assert.Nil(t, got, "nothing stored yet")

	want := settings.Defaults()
	want.Theme = settings.ThemeDark
	want.SaveHistory = false
	require.NoError(t, s.SaveSettings(ctx, &want))

	got, err = s.LoadSettings(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, want, *got)
	assert.Zero(t, mr.TTL(KeySettings), "settings never expire")
}

func TestLoadSettingsCorrupt(t *testing.T) {
	s, mr := newTestStore(t)
	require.NoError(t, mr.Set(KeySettings, "{not json"))

	_, err := s.LoadSettings(context.Background())
	assert.Error(t, err)
}

func TestSettingsStoreFeedsManager(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	m := settings.NewManager(s, settings.Defaults())
	_, err := m.Update(ctx, func(st *settings.Settings) { st.Beep = true })
	require.NoError(t, err)

	reloaded := settings.NewManager(s, settings.Defaults())
	require.NoError(t, reloaded.Load(ctx))
	assert.True(t, reloaded.Get().Beep)
}
