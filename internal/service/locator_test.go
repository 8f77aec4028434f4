package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"docgate/internal/model"
)

func TestResolveStoragePath(t *testing.T) {
	tests := []struct {
		name    string
		doc     *model.Document
		want    string
		wantErr bool
	}{
		{
			name: "explicit storagePath wins",
			doc: &model.Document{
				StoragePath:   "documents/circulares/abc.pdf",
				Categoria:     "eventos",
				ArchivoNombre: "otro.pdf",
			},
			want: "documents/circulares/abc.pdf",
		},
		{
			name: "leading slashes stripped",
			doc:  &model.Document{StoragePath: "//documents/x.pdf"},
			want: "documents/x.pdf",
		},
		{
			name: "categoria plus archivoNombre synthesized",
			doc:  &model.Document{Categoria: "circulares", ArchivoNombre: "marzo.pdf"},
			want: "documents/circulares/marzo.pdf",
		},
		{
			name: "categoria alone is not enough",
			doc:  &model.Document{Categoria: "circulares"},
			wantErr: true,
		},
		{
			name: "gs uri",
			doc:  &model.Document{ArchivoURL: "gs://b/documents/x/y.pdf"},
			want: "documents/x/y.pdf",
		},
		{
			name: "http download url with encoded key",
			doc:  &model.Document{ArchivoURL: "https://firebasestorage.googleapis.com/v0/b/portal.appspot.com/o/documents%2Fcirculares%2Fy.pdf?alt=media&token=abc"},
			want: "documents/circulares/y.pdf",
		},
		{
			name:    "unparseable archivoURL",
			doc:     &model.Document{ArchivoURL: "ftp://nope/whatever"},
			wantErr: true,
		},
		{
			name:    "http url without o segment",
			doc:     &model.Document{ArchivoURL: "https://example.com/files/y.pdf"},
			wantErr: true,
		},
		{
			name:    "nothing resolvable",
			doc:     &model.Document{},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolveStoragePath(tt.doc)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrPathUnresolved)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveStoragePathIdempotent(t *testing.T) {
	doc := &model.Document{ArchivoURL: "gs://b/documents/x/y.pdf"}

	first, err := resolveStoragePath(doc)
	assert.NoError(t, err)
	second, err := resolveStoragePath(doc)
	assert.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, "documents/x/y.pdf", first)
}

func TestResolveBucket(t *testing.T) {
	tests := []struct {
		name string
		doc  *model.Document
		want string
	}{
		{
			name: "storageBucket field wins",
			doc:  &model.Document{StorageBucket: "explicit", Bucket: "other", ArchivoURL: "gs://legacy/x"},
			want: "explicit",
		},
		{
			name: "bucket field second",
			doc:  &model.Document{Bucket: "other", ArchivoURL: "gs://legacy/x"},
			want: "other",
		},
		{
			name: "gs uri bucket",
			doc:  &model.Document{ArchivoURL: "gs://legacy-bucket/documents/x.pdf"},
			want: "legacy-bucket",
		},
		{
			name: "http url bucket",
			doc:  &model.Document{ArchivoURL: "https://firebasestorage.googleapis.com/v0/b/portal.appspot.com/o/x.pdf?alt=media"},
			want: "portal.appspot.com",
		},
		{
			name: "no bucket means default applies",
			doc:  &model.Document{StoragePath: "documents/x.pdf"},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, resolveBucket(tt.doc))
		})
	}
}
