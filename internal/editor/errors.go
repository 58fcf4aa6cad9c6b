package editor

import "errors"

var (
	// ErrNothingToSave is returned by Build when there is no job, no
	// selected content or no loaded dataset.
	ErrNothingToSave = errors.New("nothing to save")

	// ErrSaveInFlight is returned when a save is requested while another
	// one has not completed.
	ErrSaveInFlight = errors.New("save already in progress")

	// ErrRowOutOfRange is returned for a row index outside the list.
	ErrRowOutOfRange = errors.New("row index out of range")

	// ErrRowAlreadyBound is returned when binding a row that already holds an item.
	ErrRowAlreadyBound = errors.New("row already bound")

	// ErrBlankItemName is returned when binding a catalog item without a name.
	ErrBlankItemName = errors.New("catalog item has no name")

	// ErrNoSelection is returned by list mutations while no content is selected.
	ErrNoSelection = errors.New("no content selected")
)

// ErrNoJobNumber is returned when a job is requested without a number.
var ErrNoJobNumber = errors.New("job number required")
