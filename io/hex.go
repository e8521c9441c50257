package io

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// reverse returns the token with its characters in reverse order.
func reverse(token string) string {
	out := []byte(token)
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return string(out)
}

// WriteHex writes words as space separated tokens of 8 hex digits, each
// token with its digits in reverse order (the least significant digit
// first).
func WriteHex(w io.Writer, words []uint32) (err error) {
	tokens := make([]string, len(words))
	for n, word := range words {
		tokens[n] = reverse(fmt.Sprintf("%08x", word))
	}

	_, err = io.WriteString(w, strings.Join(tokens, " "))
	return
}

// ReadHex reads whitespace separated reversed-hex tokens.
func ReadHex(r io.Reader) (words []uint32, err error) {
	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanWords)

	for scanner.Scan() {
		token := scanner.Text()
		var value uint64
		value, err = strconv.ParseUint(reverse(token), 16, 32)
		if err != nil {
			err = ErrHexToken(token)
			return
		}
		words = append(words, uint32(value))
	}

	err = scanner.Err()
	return
}
