package apiclient

import (
	"encoding/json"
	"reflect"

	"github.com/instituto-brotar/painel-brotar/internal/logging"
	"github.com/instituto-brotar/painel-brotar/internal/models"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

// Page is a list response normalised to its items, plus pagination metadata
// when the backend sent any
type Page[T any] struct {
	Items []T
	Meta  *models.ListMeta
}

// UnwrapList normalises a list response. A {data: [...], meta: {...}} body
// yields its data items, a bare array yields its elements, and any other
// shape yields an empty list. Items that do not decode into T are logged
// and left out.
func UnwrapList[T any](body []byte) Page[T] {
	page := Page[T]{Items: []T{}}
	if !gjson.ValidBytes(body) {
		return page
	}

	root := gjson.ParseBytes(body)
	var items gjson.Result
	switch {
	case root.IsArray():
		items = root
	case root.IsObject() && root.Get("data").IsArray():
		items = root.Get("data")
		if meta := root.Get("meta"); meta.IsObject() {
			var m models.ListMeta
			if err := json.Unmarshal([]byte(meta.Raw), &m); err == nil {
				page.Meta = &m
			}
		}
	default:
		return page
	}

	index := 0
	items.ForEach(func(_, value gjson.Result) bool {
		var item T
		if err := json.Unmarshal([]byte(value.Raw), &item); err != nil {
			logging.Logger.Warn("skipping list item that does not decode",
				zap.String("type", reflect.TypeOf(item).String()),
				zap.Int("index", index),
				zap.Error(err))
		} else {
			page.Items = append(page.Items, item)
		}
		index++
		return true
	})
	return page
}

// MetaTotal returns meta.total of a paginated body, 0 when absent
func MetaTotal(body []byte) int {
	return int(gjson.GetBytes(body, "meta.total").Int())
}

// ArrayLength returns the number of list items in body, decodable or not
func ArrayLength(body []byte) int {
	if !gjson.ValidBytes(body) {
		return 0
	}
	root := gjson.ParseBytes(body)
	switch {
	case root.IsArray():
		return len(root.Array())
	case root.IsObject() && root.Get("data").IsArray():
		return len(root.Get("data").Array())
	default:
		return 0
	}
}
