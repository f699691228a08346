package main

import (
	"fmt"
	"io"
	"slices"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"gregoryjjb/ive/circularbuffer"
	"gregoryjjb/ive/cursor"
	"gregoryjjb/ive/pubsub"
)

var vlog zerolog.Logger

func init() {
	vlog = log.With().Str("component", "viewer").Logger()
}

// Viewer holds the cursor over the images of the viewed directory. All
// access to the cursor goes through the viewer's lock.
type Viewer struct {
	loader  *ImageLoader
	history *circularbuffer.CircularBuffer[string]
	ps      *pubsub.Pubsub[ViewerEvent]

	mu     sync.Mutex
	images *cursor.CyclicCursor[ImageFile]
}

func NewViewer(loader *ImageLoader, historySize int) (*Viewer, error) {
	history, err := circularbuffer.New[string](historySize)
	if err != nil {
		return nil, fmt.Errorf("history: %w", err)
	}

	return &Viewer{
		loader:  loader,
		history: history,
		ps:      pubsub.New[ViewerEvent](),
		images:  cursor.New[ImageFile](nil),
	}, nil
}

// Load rebuilds the image sequence from disk. If the image that was being
// shown still exists the cursor stays on it, otherwise it starts reset.
func (v *Viewer) Load() error {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.load()
}

// SetSortOrder changes the order and reloads
func (v *Viewer) SetSortOrder(order SortOrder) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.loader.SetSortOrder(order)
	return v.load()
}

func (v *Viewer) load() error {
	images, err := v.loader.LoadImages()
	if err != nil {
		return err
	}

	start := cursor.ResetIndex
	if cur, err := v.images.Current(); err == nil {
		start = slices.IndexFunc(images, func(img ImageFile) bool {
			return img.Name == cur.Name
		})
	}
	v.images = cursor.NewAt(images, start)

	vlog.Info().
		Str("dir", v.loader.Dir()).
		Str("order", v.loader.SortOrder().String()).
		Int("count", v.images.Size()).
		Int("index", v.images.Index()).
		Msg("Images loaded")

	v.publish(EventReload, "")
	return nil
}

func (v *Viewer) SortOrder() SortOrder {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.loader.SortOrder()
}

func (v *Viewer) Next() (ImageInfo, error) {
	return v.move((*cursor.CyclicCursor[ImageFile]).MoveNext)
}

func (v *Viewer) Previous() (ImageInfo, error) {
	return v.move((*cursor.CyclicCursor[ImageFile]).MovePrevious)
}

func (v *Viewer) move(step func(*cursor.CyclicCursor[ImageFile]) error) (ImageInfo, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if err := step(v.images); err != nil {
		return ImageInfo{}, err
	}

	img, err := v.images.Current()
	if err != nil {
		return ImageInfo{}, err
	}
	v.history.Push(img.Name)
	v.publish(EventShow, "")

	return img.Info(v.images.Index(), v.images.Size()), nil
}

// Current returns the image under the cursor together with its position
func (v *Viewer) Current() (ImageFile, ImageInfo, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	img, err := v.images.Current()
	if err != nil {
		return ImageFile{}, ImageInfo{}, err
	}
	return img, img.Info(v.images.Index(), v.images.Size()), nil
}

// CurrentInfo is Current plus the decoded image dimensions
func (v *Viewer) CurrentInfo() (ImageInfo, error) {
	img, info, err := v.Current()
	if err != nil {
		return ImageInfo{}, err
	}

	w, h, err := v.loader.Dimensions(img)
	if err != nil {
		vlog.Warn().Err(err).Str("image", img.Name).Msg("Could not read dimensions")
	} else {
		info.Width, info.Height = w, h
	}
	return info, nil
}

func (v *Viewer) Reset() {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.images.Reset()
	v.publish(EventReset, "")
}

// Remove takes the current image out of the rotation. Files on disk are
// left alone, so a reload brings it back.
func (v *Viewer) Remove() (ImageFile, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	removed, ok := v.images.Remove()
	if !ok {
		return ImageFile{}, cursor.ErrNoCurrentElement
	}

	vlog.Info().
		Str("image", removed.Name).
		Int("remaining", v.images.Size()).
		Msg("Removed image from rotation")

	v.publish(EventRemove, removed.Name)
	return removed, nil
}

// Images lists every image in cursor order without moving the cursor
func (v *Viewer) Images() []ImageFile {
	v.mu.Lock()
	snapshot := v.images.Clone()
	v.mu.Unlock()

	snapshot.Reset()
	return slices.Collect(snapshot.All())
}

// Export writes a zip of every image in cursor order
func (v *Viewer) Export(w io.Writer) error {
	return v.loader.Export(v.Images(), w)
}

func (v *Viewer) Len() int {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.images.Size()
}

// History returns recently shown image names, oldest first
func (v *Viewer) History() []string {
	return v.history.Items()
}

func (v *Viewer) Subscribe() (func(), <-chan ViewerEvent) {
	handle, ch := v.ps.Subscribe()
	return func() {
		v.ps.Unsubscribe(handle)
	}, ch
}

// Subscribers is the number of clients currently listening for events
func (v *Viewer) Subscribers() int {
	return v.ps.Len()
}

func (v *Viewer) Close() {
	v.ps.Close()
}

func (v *Viewer) notify(t ViewerEventType, payload string) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.publish(t, payload)
}

// publish must be called with mu held
func (v *Viewer) publish(t ViewerEventType, payload string) {
	event := ViewerEvent{
		Type:    t,
		Count:   v.images.Size(),
		Payload: payload,
	}
	if img, err := v.images.Current(); err == nil {
		info := img.Info(v.images.Index(), v.images.Size())
		event.Image = &info
	}
	v.ps.Publish(event)
}
