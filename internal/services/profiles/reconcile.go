package profiles

// processedFile is an upload that already went through the image
// pipeline and is ready to be written to asset storage.
type processedFile struct {
	data        []byte
	contentType string
}

// fileCursor hands out uploaded files in order. The "new_file" marker
// consumes the next unconsumed file in its bucket; association is
// positional, not by filename.
type fileCursor struct {
	files []processedFile
	idx   int
}

func (c *fileCursor) take() (processedFile, bool) {
	if c.idx >= len(c.files) {
		return processedFile{}, false
	}
	f := c.files[c.idx]
	c.idx++
	return f, true
}

type listOptions[In, Out any] struct {
	incomingID func(In) string
	existingID func(Out) string
	// merge builds the resulting item; prev is nil for new items.
	merge func(in In, prev *Out) Out
	// retainUnmatched keeps existing items the update does not
	// mention (jobs merge in place, carousel and courses replace
	// the list wholesale).
	retainUnmatched bool
}

// reconcileList is the single reconciliation routine shared by the
// carousel, course and job lists. Incoming items are matched to
// existing ones by id; everything else is per-list policy carried in
// the options.
func reconcileList[In, Out any](incoming []In, existing []Out, opts listOptions[In, Out]) []Out {
	var out []Out
	if opts.retainUnmatched {
		out = append(out, existing...)
	}

	for _, in := range incoming {
		var prev *Out
		pos := -1
		if id := opts.incomingID(in); id != "" {
			for i := range existing {
				if opts.existingID(existing[i]) == id {
					prev = &existing[i]
					break
				}
			}
			if opts.retainUnmatched && prev != nil {
				for i := range out {
					if opts.existingID(out[i]) == id {
						pos = i
						break
					}
				}
			}
		}

		item := opts.merge(in, prev)
		if pos >= 0 {
			out[pos] = item
		} else {
			out = append(out, item)
		}
	}

	if out == nil {
		out = []Out{}
	}
	return out
}

// fallback keeps the existing value when the update left the field
// blank, so a partial item never nulls out what it did not mention.
func fallback(incoming, existing string) string {
	if incoming != "" {
		return incoming
	}
	return existing
}
