package ebitenhost

import (
	"errors"

	"github.com/ncruces/zenity"

	"github.com/san-kum/constellation/internal/export"
)

// saveFrameDialog asks where to write the last frame as SVG. A canceled
// dialog returns an empty path and no error.
func saveFrameDialog(rec *export.Recorder) (string, error) {
	path, err := zenity.SelectFileSave(
		zenity.Title("Save Frame"),
		zenity.Filename("constellation.svg"),
		zenity.ConfirmOverwrite(),
		zenity.FileFilters{{
			Name:     "SVG",
			Patterns: []string{"*.svg"},
		}},
	)
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return "", nil
		}
		return "", err
	}
	return path, export.WriteSVG(path, rec, export.DefaultBackground)
}
