package queue

// Track is one playable file.
type Track struct {
	Title string
	Path  string
}

// Queue is an ordered track list for directory playback. It is only mutated
// from the UI's single-threaded update loop.
type Queue struct {
	tracks  []Track
	current int
}

// New creates a Queue from the given tracks.
func New(tracks []Track) *Queue {
	return &Queue{tracks: tracks}
}

// Current returns the active track, or nil for an empty queue.
func (q *Queue) Current() *Track {
	if q.current < 0 || q.current >= len(q.tracks) {
		return nil
	}
	return &q.tracks[q.current]
}

// Advance moves to the next track. Returns false at the end.
func (q *Queue) Advance() bool {
	if q.current+1 >= len(q.tracks) {
		return false
	}
	q.current++
	return true
}

// Previous moves back one track. Returns false at the start.
func (q *Queue) Previous() bool {
	if q.current <= 0 {
		return false
	}
	q.current--
	return true
}

// Len returns the number of tracks.
func (q *Queue) Len() int { return len(q.tracks) }

// CurrentIndex returns the zero-based index of the active track.
func (q *Queue) CurrentIndex() int { return q.current }

// SetCurrentIndex jumps directly to a track.
func (q *Queue) SetCurrentIndex(i int) {
	if i >= 0 && i < len(q.tracks) {
		q.current = i
	}
}

// Track returns the track at i, or nil when out of range.
func (q *Queue) Track(i int) *Track {
	if i < 0 || i >= len(q.tracks) {
		return nil
	}
	return &q.tracks[i]
}
