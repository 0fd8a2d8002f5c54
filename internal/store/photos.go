package store

import "sync"

// Photo is a processed cargo photo.
type Photo struct {
	Data []byte
	MIME string
	ETag string
}

// Photos keeps at most one photo per item ID.
type Photos struct {
	mu     sync.RWMutex
	photos map[int64]Photo
}

// NewPhotos returns an empty photo store.
func NewPhotos() *Photos {
	return &Photos{photos: make(map[int64]Photo)}
}

// Set stores p as the photo of item id, replacing any previous one.
func (p *Photos) Set(id int64, photo Photo) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.photos[id] = photo
}

// Get returns the photo of item id.
func (p *Photos) Get(id int64) (Photo, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	photo, ok := p.photos[id]
	return photo, ok
}

// Has reports whether item id has a photo.
func (p *Photos) Has(id int64) bool {
	_, ok := p.Get(id)
	return ok
}

// Delete drops the photo of item id, if any.
func (p *Photos) Delete(id int64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.photos, id)
}
