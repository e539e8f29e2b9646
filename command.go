//
// Copyright 2018-2025 Cristian Maglie. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package curlfetch

import (
	"net/http"
	"strings"
)

// Header is a single request header captured from a command.
type Header struct {
	Key   string
	Value string
}

// Headers is an ordered list of request headers. Keys keep the case they
// were captured with.
type Headers []Header

// Set replaces the value of the header with the same key, keeping its
// position, or appends a new one.
func (h *Headers) Set(key, value string) {
	for i := range *h {
		if (*h)[i].Key == key {
			(*h)[i].Value = value
			return
		}
	}
	*h = append(*h, Header{Key: key, Value: value})
}

// Get returns the value of the last header matching key case-insensitively.
func (h Headers) Get(key string) (string, bool) {
	for i := len(h) - 1; i >= 0; i-- {
		if strings.EqualFold(h[i].Key, key) {
			return h[i].Value, true
		}
	}
	return "", false
}

// Keys returns the header keys in capture order.
func (h Headers) Keys() []string {
	res := make([]string, len(h))
	for i, hdr := range h {
		res[i] = hdr.Key
	}
	return res
}

// HTTPHeader converts the headers into a net/http header map.
func (h Headers) HTTPHeader() http.Header {
	res := make(http.Header, len(h))
	for _, hdr := range h {
		res.Set(hdr.Key, hdr.Value)
	}
	return res
}

// ParsedRequest is the URL and headers extracted from a command.
type ParsedRequest struct {
	URL     string
	Headers Headers
}

const quoteChars = `'"`

// Tokenize splits text into shell words. Single and double quoted sections
// are taken literally and the quotes removed. There is no escape character:
// backslashes, including a \" sequence, are kept as they are, which is what
// browsers expect when they export a request as a cURL command.
func Tokenize(text string) []string {
	var tokens []string
	var token strings.Builder
	inToken := false
	var quote rune

	for _, c := range text {
		if quote != 0 {
			if c == quote {
				quote = 0
			} else {
				token.WriteRune(c)
			}
			continue
		}
		switch {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			if inToken {
				tokens = append(tokens, token.String())
				token.Reset()
				inToken = false
			}
		case c == '\'' || c == '"':
			quote = c
			inToken = true
		default:
			token.WriteRune(c)
			inToken = true
		}
	}
	// An unterminated quote runs to the end of the input.
	if inToken {
		tokens = append(tokens, token.String())
	}
	return tokens
}

// ParseCommand extracts the URL and the request headers from a cURL command.
// The first word starting with "http" is the URL, every word following a -H
// flag is a "Key: Value" header. Headers that can't be split or that appear
// in exclusions are dropped; everything else in the command is ignored.
// ErrNoURL is returned if the command contains no URL.
func ParseCommand(command string, exclusions ExclusionSet) (*ParsedRequest, error) {
	req := &ParsedRequest{}
	tokens := Tokenize(command)
	for i := 0; i < len(tokens); i++ {
		token := tokens[i]
		switch {
		case token == "-H":
			i++
			if i >= len(tokens) {
				break
			}
			key, value, ok := splitHeader(strings.Trim(tokens[i], quoteChars))
			if !ok || exclusions.Contains(key) {
				continue
			}
			req.Headers.Set(key, value)
		case req.URL == "" && strings.HasPrefix(token, "http"):
			req.URL = strings.Trim(token, quoteChars)
		}
	}
	if req.URL == "" {
		return nil, ErrNoURL
	}
	return req, nil
}

func splitHeader(spec string) (string, string, bool) {
	return strings.Cut(spec, ": ")
}
