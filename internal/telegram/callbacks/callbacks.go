// Package callbacks encodes and decodes inline button payloads.
//
// Vocabulary:
//
//	activate_trial
//	back_to_menu
//	topic_<N>                open section topic_<N>
//	content_topic_<N>_<M>    open the M-th (1-based) item of section topic_<N>
package callbacks

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const (
	ActivateTrial = "activate_trial"
	BackToMenu    = "back_to_menu"

	topicPrefix   = "topic_"
	contentPrefix = "content_"
)

var (
	ErrMalformed = errors.New("callbacks: malformed payload")
	ErrUnknown   = errors.New("callbacks: unknown payload")
)

type Kind int

const (
	KindActivateTrial Kind = iota + 1
	KindBackToMenu
	KindTopic
	KindContent
)

func (k Kind) String() string {
	switch k {
	case KindActivateTrial:
		return "activate_trial"
	case KindBackToMenu:
		return "back_to_menu"
	case KindTopic:
		return "topic"
	case KindContent:
		return "content"
	default:
		return "unknown"
	}
}

// Callback is a decoded button payload.
type Callback struct {
	Kind    Kind
	Section string // topic_<N> for KindTopic and KindContent
	Item    int    // 1-based, KindContent only
}

// Parse decodes data. Payloads with a known prefix but a bad shape return
// ErrMalformed, anything else ErrUnknown.
func Parse(data string) (Callback, error) {
	switch {
	case data == ActivateTrial:
		return Callback{Kind: KindActivateTrial}, nil
	case data == BackToMenu:
		return Callback{Kind: KindBackToMenu}, nil
	case strings.HasPrefix(data, topicPrefix):
		if !IsSectionKey(data) {
			return Callback{}, fmt.Errorf("%w: %q", ErrMalformed, data)
		}
		return Callback{Kind: KindTopic, Section: data}, nil
	case strings.HasPrefix(data, contentPrefix):
		rest := strings.TrimPrefix(data, contentPrefix)
		i := strings.LastIndexByte(rest, '_')
		if i < 0 {
			return Callback{}, fmt.Errorf("%w: %q", ErrMalformed, data)
		}
		section, idx := rest[:i], rest[i+1:]
		if !IsSectionKey(section) {
			return Callback{}, fmt.Errorf("%w: %q", ErrMalformed, data)
		}
		item, ok := positive(idx)
		if !ok {
			return Callback{}, fmt.Errorf("%w: %q", ErrMalformed, data)
		}
		return Callback{Kind: KindContent, Section: section, Item: item}, nil
	default:
		return Callback{}, fmt.Errorf("%w: %q", ErrUnknown, data)
	}
}

// IsSectionKey reports whether key has the topic_<N> shape section keys must use.
func IsSectionKey(key string) bool {
	n, found := strings.CutPrefix(key, topicPrefix)
	if !found {
		return false
	}
	_, ok := positive(n)
	return ok
}

// Topic returns the payload opening a section.
func Topic(section string) string {
	return section
}

// Content returns the payload opening the item-th leaf of a section.
func Content(section string, item int) string {
	return contentPrefix + section + "_" + strconv.Itoa(item)
}

func positive(s string) (int, bool) {
	if s == "" || s[0] == '0' || s[0] == '+' || s[0] == '-' {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}
