package entity

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewSession_DefaultState(t *testing.T) {
	s := NewSession("chat-1", LocaleZhTW)
	require.Equal(t, "chat-1", s.ID)
	require.Equal(t, StateIdle, s.State())
	require.Equal(t, SourceCamera, s.Mode())
	require.Equal(t, LocaleZhTW, s.Locale())
	require.Equal(t, 0, s.History.Len())
}

func TestLocaleNext_Toggles(t *testing.T) {
	require.Equal(t, LocaleEN, LocaleZhTW.Next())
	require.Equal(t, LocaleZhTW, LocaleEN.Next())
	require.Equal(t, LocaleZhTW, Locale("fr").Next())
}

func TestParseLocale(t *testing.T) {
	l, ok := ParseLocale("en")
	require.True(t, ok)
	require.Equal(t, LocaleEN, l)

	_, ok = ParseLocale("EN")
	require.False(t, ok)
}

func TestHistory_AppendListAt(t *testing.T) {
	h := &History{}
	img := &DecodedImage{Width: 2, Height: 2}
	set := NewDetectionSet([]RawDetection{{Label: "Adenium_obesum", Confidence: 0.9}}, DedupByPair)

	h.Append(img, set)
	h.Append(img, DetectionSet{})

	require.Equal(t, 2, h.Len())
	entries := h.List()
	require.Len(t, entries, 2)
	require.Equal(t, 1, entries[0].Detections.Len())

	first, ok := h.At(1)
	require.True(t, ok)
	require.Same(t, img, first.Image)

	_, ok = h.At(0)
	require.False(t, ok)
	_, ok = h.At(3)
	require.False(t, ok)
}

func TestHistory_ListIsCopy(t *testing.T) {
	h := &History{}
	h.Append(&DecodedImage{}, DetectionSet{})

	entries := h.List()
	entries[0] = HistoryEntry{}

	again := h.List()
	require.NotNil(t, again[0].Image)
}

func TestSession_LocaleDoesNotTouchHistory(t *testing.T) {
	s := NewSession("s", LocaleZhTW)
	s.History.Append(&DecodedImage{}, NewDetectionSet([]RawDetection{{Label: "x", Confidence: 1}}, DedupByPair))

	s.SetLocale(LocaleEN)
	require.Equal(t, 1, s.History.Len())
	require.Equal(t, LocaleEN, s.Locale())
}
