package fantrax

import (
	"fmt"

	"github.com/pmurley/go-fantrax/auth_client"
	fmodels "github.com/pmurley/go-fantrax/models"
)

// TransactionSource is anything that can list the league's transactions.
type TransactionSource interface {
	GetTransactionsFromFantrax() ([]fmodels.Transaction, error)
}

type Client struct {
	Client   *auth_client.Client
	LeagueId string
}

var _ TransactionSource = (*Client)(nil)

func NewFantraxClient(leagueId string, useCache bool) (*Client, error) {
	if leagueId == "" {
		return nil, fmt.Errorf("fantrax league ID is required")
	}
	client, err := auth_client.NewClient(leagueId, useCache)
	if err != nil {
		return nil, fmt.Errorf("failed to create fantrax client: %w", err)
	}
	return &Client{
		Client:   client,
		LeagueId: leagueId,
	}, nil
}

func (c *Client) GetTransactionsFromFantrax() ([]fmodels.Transaction, error) {
	transactions, err := c.Client.GetAllTransactionsIncludingTrades()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch transactions: %w", err)
	}

	return transactions, nil
}
