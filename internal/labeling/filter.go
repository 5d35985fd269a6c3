package labeling

// Filter returns the comments whose videoId equals videoID, in dataset
// order. With frame set and a videos dataset given, the selection is
// additionally restricted to video ids carrying that frame, so a frame the
// selected video does not have yields an empty result rather than an error.
func Filter(c *Comments, videos *Videos, videoID string, frame *int) []Comment {
	matched := make([]Comment, 0)
	for _, row := range c.Rows {
		if row.Key.VideoID == videoID {
			matched = append(matched, row)
		}
	}

	if frame != nil && videos != nil {
		withFrame := videos.IDsForFrame(*frame)
		kept := matched[:0]
		for _, row := range matched {
			if withFrame[row.Key.VideoID] {
				kept = append(kept, row)
			}
		}
		matched = kept
	}

	return matched
}
