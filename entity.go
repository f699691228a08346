package main

import (
	"errors"
	"time"
)

var (
	ErrValidation = errors.New("validation failed")
	ErrNotExist   = errors.New("doesn't exist")
)

// ImageFile is a single image in the viewed directory
type ImageFile struct {
	Name    string
	Path    string
	Size    int64
	ModTime time.Time
}

// ImageInfo is what the API reports about the image under the cursor
type ImageInfo struct {
	Name     string    `json:"name"`
	Size     int64     `json:"size"`
	Modified time.Time `json:"modified"`
	Index    int       `json:"index"`
	Count    int       `json:"count"`
	Width    int       `json:"width,omitempty"`
	Height   int       `json:"height,omitempty"`
}

type ViewerEventType string

const (
	EventShow      ViewerEventType = "show"
	EventReset     ViewerEventType = "reset"
	EventRemove    ViewerEventType = "remove"
	EventReload    ViewerEventType = "reload"
	EventSlideshow ViewerEventType = "slideshow"
)

type ViewerEvent struct {
	Type  ViewerEventType `json:"type"`
	Image *ImageInfo      `json:"image,omitempty"`
	Count int             `json:"count"`
	// Payload carries extra detail such as the removed image name
	Payload string `json:"payload,omitempty"`
}

func (img ImageFile) Info(index, count int) ImageInfo {
	return ImageInfo{
		Name:     img.Name,
		Size:     img.Size,
		Modified: img.ModTime,
		Index:    index,
		Count:    count,
	}
}
