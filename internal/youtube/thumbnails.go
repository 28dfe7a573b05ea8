package youtube

import yt "google.golang.org/api/youtube/v3"

// bestThumbnailURL picks the largest thumbnail present. Sizes are checked
// in ascending order and each present size overwrites the selection, so
// the largest available wins. Returns "" when no thumbnail exists.
func bestThumbnailURL(t *yt.ThumbnailDetails) string {
	if t == nil {
		return ""
	}

	url := ""

	for _, thumb := range []*yt.Thumbnail{t.Default, t.Medium, t.Standard, t.High, t.Maxres} {
		if thumb != nil && thumb.Url != "" {
			url = thumb.Url
		}
	}

	return url
}
