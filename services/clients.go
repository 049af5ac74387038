package services

import (
	"context"
)

// Client вызывающая сторона админского API, заполняется из JWT.
type Client struct {
	Subject string
	Roles   []string
}

func (c *Client) HasRole(role string) bool {
	for _, r := range c.Roles {
		if r == role {
			return true
		}
	}
	return false
}

func SetClient(ctx context.Context, c *Client) context.Context {
	return context.WithValue(ctx, clientCtxKey, c)
}

// GetClient возвращает данные клиента из контекста.
//
// Публичный метод для использования в других пакетах
func GetClient(ctx context.Context) *Client {
	c, _ := ctx.Value(clientCtxKey).(*Client)
	return c
}
