package youtube

// watchURLPrefix is the canonical watch page URL template.
const watchURLPrefix = "https://www.youtube.com/watch?v="

// WatchURL returns the public watch page URL for a video ID.
func WatchURL(videoID string) string {
	return watchURLPrefix + videoID
}
