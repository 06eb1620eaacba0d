package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// call выполняет JSON запрос и декодирует полезную нагрузку в out (если out != nil)
func (c *Client) call(ctx context.Context, method, path string, query url.Values, body, out any) (*Response, error) {
	resp, err := c.Do(ctx, Request{
		Method: method,
		Path:   path,
		Query:  query,
		Body:   body,
		Schema: SchemaJSON,
	})
	if err != nil {
		return nil, err
	}

	if out != nil {
		if err := resp.Decode(out); err != nil {
			return nil, err
		}
	}
	return resp, nil
}

// download выполняет GET, возвращая тело без нормализации
func (c *Client) download(ctx context.Context, path string, query url.Values) ([]byte, error) {
	resp, err := c.Do(ctx, Request{
		Method: http.MethodGet,
		Path:   path,
		Query:  query,
		Schema: SchemaRaw,
	})
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}

func itemPath(collection string, id int64) string {
	return collection + strconv.FormatInt(id, 10) + "/"
}
