package audio

import (
	"github.com/bogem/id3v2"
)

// TagEditAction defines how to handle individual ID3 tags.
type TagEditAction int

const (
	// TagEmpty clears the tag value.
	TagEmpty TagEditAction = iota

	// TagModify updates the tag with the value reported by the service.
	TagModify

	// TagDoNotModify leaves the existing tag value unchanged.
	TagDoNotModify
)

// TagConfig holds tagging configuration for each ID3 field.
//
// Example:
//
//	cfg := &TagConfig{
//	    ModifyTags: true,
//	    Title:      TagModify,      // Use the video title
//	    Comments:   TagModify,      // Record the source URL
//	    Genre:      TagDoNotModify, // Keep whatever the service wrote
//	}
type TagConfig struct {
	// ModifyTags is a master switch. If false, no string tags are modified.
	ModifyTags bool

	// Title controls the TIT2 (Title) frame.
	Title TagEditAction

	// Comments controls the COMM (Comments) frame, which receives the source URL.
	Comments TagEditAction

	// Genre controls the TCON (Content type) frame.
	Genre TagEditAction
}

// DefaultTagConfig returns the default tag configuration.
//
// Title and comments are written; genre is cleared since the service does
// not report one.
func DefaultTagConfig() *TagConfig {
	return &TagConfig{
		ModifyTags: true,
		Title:      TagModify,
		Comments:   TagModify,
		Genre:      TagEmpty,
	}
}

// TrackInfo is the metadata available for a downloaded audio file.
type TrackInfo struct {
	// Title is the video title.
	Title string

	// SourceURL is the page the audio was extracted from.
	SourceURL string
}

// Tagger writes ID3 tags to mp3 files.
type Tagger struct {
	config *TagConfig
}

// NewTagger creates a new Tagger with the given configuration.
//
// If config is nil, DefaultTagConfig() is used.
func NewTagger(config *TagConfig) *Tagger {
	if config == nil {
		config = DefaultTagConfig()
	}
	return &Tagger{config: config}
}

// TagFile writes ID3 tags to the mp3 at path.
//
// Existing tags are parsed and updated in place; files without a tag get a
// new one. cover is embedded as the front cover when non-nil and must be
// JPEG data.
func (t *Tagger) TagFile(path string, info TrackInfo, cover []byte) error {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return err
	}
	defer tag.Close()

	if t.config.ModifyTags {
		t.updateStringTags(tag, info)
	}

	if cover != nil {
		t.updateArtwork(tag, cover)
	}

	return tag.Save()
}

// updateStringTags updates text-based ID3 frames based on configuration.
func (t *Tagger) updateStringTags(tag *id3v2.Tag, info TrackInfo) {
	switch t.config.Title {
	case TagEmpty:
		tag.SetTitle("")
	case TagModify:
		if info.Title != "" {
			tag.SetTitle(info.Title)
		}
	}

	switch t.config.Comments {
	case TagEmpty:
		tag.DeleteFrames(tag.CommonID("Comments"))
	case TagModify:
		if info.SourceURL != "" {
			tag.DeleteFrames(tag.CommonID("Comments"))
			tag.AddCommentFrame(id3v2.CommentFrame{
				Encoding:    id3v2.EncodingUTF8,
				Language:    "eng",
				Description: "Source",
				Text:        info.SourceURL,
			})
		}
	}

	if t.config.Genre == TagEmpty {
		tag.SetGenre("")
	}
}

// updateArtwork embeds cover art as an attached picture frame.
func (t *Tagger) updateArtwork(tag *id3v2.Tag, cover []byte) {
	tag.DeleteFrames(tag.CommonID("Attached picture"))

	tag.AddAttachedPicture(id3v2.PictureFrame{
		Encoding:    id3v2.EncodingUTF8,
		MimeType:    "image/jpeg",
		PictureType: id3v2.PTFrontCover,
		Description: "Cover",
		Picture:     cover,
	})
}
