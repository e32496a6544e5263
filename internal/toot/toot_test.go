package toot

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"wikibot/internal/models"
)

func today() time.Time {
	return time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
}

func TestFormatWithLink(t *testing.T) {
	rec := models.EventRecord{
		Text:  "1990: Wiedervereinigung.",
		Year:  1990,
		Links: []string{"https://de.wikipedia.org/wiki/Deutsche_Wiedervereinigung", "https://de.wikipedia.org/wiki/Berlin"},
	}

	got := Format(rec, today())
	want := "Heute vor 34 Jahren:\n\n1990: Wiedervereinigung.\n\nhttps://de.wikipedia.org/wiki/Deutsche_Wiedervereinigung"
	if got != want {
		t.Errorf("Format mismatch:\n got %q\nwant %q", got, want)
	}
}

func TestFormatWithoutLinks(t *testing.T) {
	rec := models.EventRecord{Text: "1886: Haymarket.", Year: 1886}

	got := Format(rec, today())
	if !strings.HasPrefix(got, "Heute vor 138 Jahren:\n\n") {
		t.Errorf("unexpected prefix: %q", got)
	}
	if strings.Count(got, "\n\n") != 1 {
		t.Errorf("no link must mean no trailing block: %q", got)
	}
}

func TestDownloadMedia(t *testing.T) {
	payload := []byte{0xff, 0xd8, 0xff, 0xe0}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(payload)
	}))
	t.Cleanup(srv.Close)

	img := &models.Image{URL: srv.URL + "/bild.jpg", AltText: "Ein Bild"}
	media, err := DownloadMedia(context.Background(), srv.Client(), img)
	if err != nil {
		t.Fatalf("DownloadMedia returned error: %v", err)
	}
	if !bytes.Equal(media.Data, payload) {
		t.Error("downloaded bytes differ")
	}
	if media.Description != "Ein Bild" {
		t.Errorf("alt text lost: %q", media.Description)
	}
}

func TestDownloadMediaNilImage(t *testing.T) {
	media, err := DownloadMedia(context.Background(), http.DefaultClient, nil)
	if err != nil || media != nil {
		t.Fatalf("expected nil, nil for records without image, got %v, %v", media, err)
	}
}

func TestDownloadMediaHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	t.Cleanup(srv.Close)

	img := &models.Image{URL: srv.URL + "/weg.jpg"}
	if _, err := DownloadMedia(context.Background(), srv.Client(), img); err == nil {
		t.Fatal("expected error on HTTP 404")
	}
}
