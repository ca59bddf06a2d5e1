package sourcehttp

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/textproto"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Azhovan/formbuilder"
)

func parseMultipart(t *testing.T, build func(w *multipart.Writer)) *multipart.Form {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	build(w)
	require.NoError(t, w.Close())

	mf, err := multipart.NewReader(&body, w.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = mf.RemoveAll() })
	return mf
}

func TestFromMultipart(t *testing.T) {
	mf := parseMultipart(t, func(w *multipart.Writer) {
		require.NoError(t, w.WriteField("title", "title"))
		require.NoError(t, w.WriteField("categories", "Web"))
		require.NoError(t, w.WriteField("categories", "React"))
		require.NoError(t, w.WriteField("$ACTION_ID_abc", ""))

		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="cover"; filename="cover.png"`)
		h.Set("Content-Type", "image/png")
		part, err := w.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write([]byte("PNGDATA"))
		require.NoError(t, err)
	})

	form := FromMultipart(mf, Options{})
	assert.Equal(t, []string{"$ACTION_ID_abc", "categories", "categories", "cover", "title"}, form.Keys())
	assert.Equal(t, []any{"Web", "React"}, form.GetAll("categories"))

	v, ok := form.Get("cover")
	require.True(t, ok)
	blob, ok := v.(formbuilder.Blob)
	require.True(t, ok)
	assert.Equal(t, "cover.png", blob.Name())
	assert.Equal(t, "image/png", blob.ContentType())
	assert.Equal(t, int64(7), blob.Size())

	rc, err := blob.Open()
	require.NoError(t, err)
	defer rc.Close()
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "PNGDATA", string(data))
}

func TestFromMultipart_FileOrder(t *testing.T) {
	mf := parseMultipart(t, func(w *multipart.Writer) {
		require.NoError(t, w.WriteField("attachment", "note"))
		fw, err := w.CreateFormFile("attachment", "a.bin")
		require.NoError(t, err)
		_, err = fw.Write([]byte{1, 2})
		require.NoError(t, err)
	})

	textFirst := FromMultipart(mf, Options{}).GetAll("attachment")
	require.Len(t, textFirst, 2)
	assert.Equal(t, "note", textFirst[0])
	assert.Implements(t, (*formbuilder.Blob)(nil), textFirst[1])

	filesFirst := FromMultipart(mf, Options{FilesFirst: true}).GetAll("attachment")
	require.Len(t, filesFirst, 2)
	assert.Implements(t, (*formbuilder.Blob)(nil), filesFirst[0])
	assert.Equal(t, "note", filesFirst[1])

	blob := filesFirst[0].(formbuilder.Blob)
	assert.Equal(t, "application/octet-stream", blob.ContentType())
}

func TestFromMultipart_Nil(t *testing.T) {
	assert.Equal(t, 0, FromMultipart(nil, Options{}).Len())
}

func TestFromValues(t *testing.T) {
	values := url.Values{
		"title":      {"title"},
		"categories": {"Web", "React"},
	}

	form := FromValues(values)
	assert.Equal(t, []string{"categories", "categories", "title"}, form.Keys())

	rec, err := formbuilder.New(form).
		Single("title", formbuilder.Required()).
		Build()
	require.NoError(t, err)
	assert.Equal(t, formbuilder.Record{
		"title":      "title",
		"categories": []string{"Web", "React"},
	}, rec)
}
