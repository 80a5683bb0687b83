package entity

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestImageInput_Variants(t *testing.T) {
	require.Equal(t, NoInput, NoImage().Kind)
	require.Equal(t, NoInput, CameraImage(nil).Kind)
	require.Equal(t, NoInput, UploadImage("a.png", []byte{}).Kind)

	cam := CameraImage([]byte{1})
	require.Equal(t, CameraInput, cam.Kind)
	require.Equal(t, SourceCamera, cam.Source())

	up := UploadImage("leaf.JPG", []byte{1})
	require.Equal(t, UploadInput, up.Kind)
	require.Equal(t, SourceUpload, up.Source())
	require.Equal(t, "leaf.JPG", up.Filename)

	require.Equal(t, ImageSource(""), NoImage().Source())
}

func TestIsAllowedUpload(t *testing.T) {
	for _, name := range []string{"a.jpg", "b.JPEG", "c.png"} {
		require.True(t, IsAllowedUpload(name), name)
	}
	for _, name := range []string{"a.gif", "b", "c.webp", "png"} {
		require.False(t, IsAllowedUpload(name), name)
	}
}

func TestParseImageSource(t *testing.T) {
	s, ok := ParseImageSource(" Upload ")
	require.True(t, ok)
	require.Equal(t, SourceUpload, s)

	_, ok = ParseImageSource("scanner")
	require.False(t, ok)
}

func TestIsDecodeError(t *testing.T) {
	require.True(t, IsDecodeError(errors.Wrap(ErrDecode, "png")))
	require.True(t, IsDecodeError(ErrUnsupportedType))
	require.False(t, IsDecodeError(ErrNoImage))
	require.False(t, IsDecodeError(nil))
}
