package emitter

import (
	"bytes"
	"errors"
	"fmt"
	"github.com/modfy/fy/internal/yamlh"
)

func analyzeAnchor(e *Emitter, anchor []byte, alias bool) error {
	if len(anchor) == 0 {
		problem := "anchor value must not be empty"
		if alias {
			problem = "alias value must not be empty"
		}
		return fmt.Errorf(problem)

	}
	for i := 0; i < len(anchor); i += yamlh.Width(anchor[i]) {
		if !yamlh.Is_alpha(anchor, i) {
			problem := "anchor value must contain alphanumerical characters only"
			if alias {
				problem = "alias value must contain alphanumerical characters only"
			}
			return fmt.Errorf(problem)
		}
	}
	e.anchorData.Anchor = anchor
	e.anchorData.Alias = alias
	return nil
}

func analyzeTag(e *Emitter, tag []byte) error {
	if len(tag) == 0 {
		return fmt.Errorf("tag value must not be empty")
	}
	for i := 0; i < len(e.tagDirectives); i++ {
		tagDirective := &e.tagDirectives[i]
		if bytes.HasPrefix(tag, tagDirective.Prefix) {
			e.tagData.Handle = tagDirective.Handle
			e.tagData.Suffix = tag[len(tagDirective.Prefix):]
			return nil
		}
	}
	e.tagData.Suffix = tag
	return nil
}

func analyzeVersionDirective(versionDirective *yamlh.VersionDirective) error {
	if versionDirective.Major != 1 || versionDirective.Minor != 1 {
		return errors.New(`incompatible %YAML directive`)
	}
	return nil
}

func analyzeTagDirective(tagDirective *yamlh.TagDirective) error {
	handle := tagDirective.Handle
	prefix := tagDirective.Prefix
	if len(handle) == 0 {
		return errors.New(`tag handle must not be empty`)
	}
	if handle[0] != '!' {
		return errors.New(`tag handle must start with '!'`)
	}
	if handle[len(handle)-1] != '!' {
		return errors.New(`tag handle must end with '!'`)
	}
	for i := 1; i < len(handle)-1; i += yamlh.Width(handle[i]) {
		if !yamlh.Is_alpha(handle, i) {
			return errors.New(`tag handle must contain alphanumerical characters only`)
		}
	}
	if len(prefix) == 0 {
		return errors.New(`tag prefix must not be empty`)
	}
	return nil
}

// analyzeScalar walks value once and sets e.scalarData's allowed-style
// flags, the same flags selectScalarStyle later consults to downgrade a
// caller's requested fy.Style when the content can't safely carry it.
func analyzeScalar(e *Emitter, value []byte) {
	var hasBlockIndicator, hasFlowIndicator, hasLineBreak, hasSpecialChar, hasTabChar bool
	var leadingSpace, leadingBreak, trailingSpace, trailingBreak, breakThenSpace, spaceThenBreak bool
	var precededByWhitespace, followedByWhitespace, prevWasSpace, prevWasBreak bool

	e.scalarData.value = value

	if len(value) == 0 {
		e.scalarData.multiline = false
		e.scalarData.flowPlainAllowed = false
		e.scalarData.blockPlainAllowed = true
		e.scalarData.singleQuotedAllowed = true
		e.scalarData.blockAllowed = false
		return
	}

	if len(value) >= 3 && ((value[0] == '-' && value[1] == '-' && value[2] == '-') || (value[0] == '.' && value[1] == '.' && value[2] == '.')) {
		hasBlockIndicator = true
		hasFlowIndicator = true
	}

	precededByWhitespace = true
	for i, w := 0, 0; i < len(value); i += w {
		w = yamlh.Width(value[i])
		followedByWhitespace = i+w >= len(value) || yamlh.Is_blank(value, i+w)

		if i == 0 {
			switch value[i] {
			case '#', ',', '[', ']', '{', '}', '&', '*', '!', '|', '>', '\'', '"', '%', '@', '`':
				hasFlowIndicator = true
				hasBlockIndicator = true
			case '?', ':':
				hasFlowIndicator = true
				if followedByWhitespace {
					hasBlockIndicator = true
				}
			case '-':
				if followedByWhitespace {
					hasFlowIndicator = true
					hasBlockIndicator = true
				}
			}
		} else {
			switch value[i] {
			case ',', '?', '[', ']', '{', '}':
				hasFlowIndicator = true
			case ':':
				hasFlowIndicator = true
				if followedByWhitespace {
					hasBlockIndicator = true
				}
			case '#':
				if precededByWhitespace {
					hasFlowIndicator = true
					hasBlockIndicator = true
				}
			}
		}

		if value[i] == '\t' {
			hasTabChar = true
		} else if !yamlh.IsPrintable(value[i:]) {
			hasSpecialChar = true
		}
		if yamlh.Is_space(value, i) {
			if i == 0 {
				leadingSpace = true
			}
			if i+yamlh.Width(value[i]) == len(value) {
				trailingSpace = true
			}
			if prevWasBreak {
				breakThenSpace = true
			}
			prevWasSpace = true
			prevWasBreak = false
		} else if yamlh.Is_break(value, i) {
			hasLineBreak = true
			if i == 0 {
				leadingBreak = true
			}
			if i+yamlh.Width(value[i]) == len(value) {
				trailingBreak = true
			}
			if prevWasSpace {
				spaceThenBreak = true
			}
			prevWasSpace = false
			prevWasBreak = true
		} else {
			prevWasSpace = false
			prevWasBreak = false
		}

		// [Go]: Why 'z'? Couldn't be the end of the string as that's the loop condition.
		precededByWhitespace = yamlh.Is_blankz(value, i)
	}

	e.scalarData.multiline = hasLineBreak
	e.scalarData.flowPlainAllowed = true
	e.scalarData.blockPlainAllowed = true
	e.scalarData.singleQuotedAllowed = true
	e.scalarData.blockAllowed = true

	if leadingSpace || leadingBreak || trailingSpace || trailingBreak {
		e.scalarData.flowPlainAllowed = false
		e.scalarData.blockPlainAllowed = false
	}
	if trailingSpace {
		e.scalarData.blockAllowed = false
	}
	if breakThenSpace {
		e.scalarData.flowPlainAllowed = false
		e.scalarData.blockPlainAllowed = false
		e.scalarData.singleQuotedAllowed = false
	}
	if spaceThenBreak || hasTabChar || hasSpecialChar {
		e.scalarData.flowPlainAllowed = false
		e.scalarData.blockPlainAllowed = false
		e.scalarData.singleQuotedAllowed = false
	}
	if spaceThenBreak || hasSpecialChar {
		e.scalarData.blockAllowed = false
	}
	if hasLineBreak {
		e.scalarData.flowPlainAllowed = false
		e.scalarData.blockPlainAllowed = false
	}
	if hasFlowIndicator {
		e.scalarData.flowPlainAllowed = false
	}
	if hasBlockIndicator {
		e.scalarData.blockPlainAllowed = false
	}
}

func analyzeEvent(e *Emitter, event *yamlh.Event) error {
	e.anchorData.Anchor = nil
	e.tagData.Handle = nil
	e.tagData.Suffix = nil
	e.scalarData.value = nil

	if len(event.Head_comment) > 0 {
		e.headComment = event.Head_comment
	}
	if len(event.Line_comment) > 0 {
		e.lineComment = event.Line_comment
	}
	if len(event.Foot_comment) > 0 {
		e.footComment = event.Foot_comment
	}
	if len(event.Tail_comment) > 0 {
		e.tailComment = event.Tail_comment
	}
	var err error
	switch event.Type {
	case yamlh.ALIAS_EVENT:
		err = analyzeAnchor(e, event.Anchor, true)
		if err != nil {
			return err
		}
	case yamlh.SCALAR_EVENT:
		if len(event.Anchor) > 0 {
			err = analyzeAnchor(e, event.Anchor, false)
			if err != nil {
				return err
			}
		}
		if len(event.Tag) > 0 && !event.Implicit && !event.Quoted_implicit {
			err = analyzeTag(e, event.Tag)
			if err != nil {
				return err
			}
		}
		analyzeScalar(e, event.Value)
	case yamlh.SEQUENCE_START_EVENT, yamlh.MAPPING_START_EVENT:
		if len(event.Anchor) > 0 {
			err = analyzeAnchor(e, event.Anchor, false)
			if err != nil {
				return err
			}
		}
		if len(event.Tag) > 0 && !event.Implicit {
			err = analyzeTag(e, event.Tag)
			if err != nil {
				return err
			}
		}
	}
	return nil
}
