package sheets

import (
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/pmurley/ulb-trade-engine/internal/cache"
	"github.com/pmurley/ulb-trade-engine/internal/models"
)

const defaultBaseURL = "https://docs.google.com/spreadsheets/d"

// PlayerSource supplies the Master Player Pool.
type PlayerSource interface {
	LoadMasterPlayerPool() ([]models.Player, error)
}

// FileSource reads the player pool from a CSV file on disk instead of the
// live sheet.
type FileSource struct {
	Path string
}

func (f FileSource) LoadMasterPlayerPool() ([]models.Player, error) {
	return LoadPlayersFile(f.Path)
}

var (
	_ PlayerSource = (*Client)(nil)
	_ PlayerSource = FileSource{}
)

// LoadInto fills the cache with the source's player pool.
func LoadInto(src PlayerSource, cache *cache.Cache) ([]models.Player, error) {
	players, err := src.LoadMasterPlayerPool()
	if err != nil {
		return nil, fmt.Errorf("failed to load player pool: %w", err)
	}
	cache.SetPlayers(players)
	return players, nil
}

// Client fetches data from public Google Sheets using CSV export
type Client struct {
	spreadsheetID string
	baseURL       string
	httpClient    *http.Client
}

func NewClient(spreadsheetID string) (*Client, error) {
	return NewClientWithBaseURL(spreadsheetID, defaultBaseURL)
}

// NewClientWithBaseURL points the client at a different export host.
func NewClientWithBaseURL(spreadsheetID, baseURL string) (*Client, error) {
	if spreadsheetID == "" {
		return nil, fmt.Errorf("spreadsheet ID is required")
	}
	return &Client{
		spreadsheetID: spreadsheetID,
		baseURL:       strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}, nil
}

// MasterPlayerGID is the tab holding every player and contract
const MasterPlayerGID = "286507798"

// LoadMasterPlayerPool loads all players from the Master Player Pool sheet
func (c *Client) LoadMasterPlayerPool() ([]models.Player, error) {
	data, err := c.GetSheetDataCSV(MasterPlayerGID)
	if err != nil {
		return nil, err
	}
	return ParsePlayerPool(data)
}

// GetSheetDataCSV fetches data from a specific sheet tab as CSV
func (c *Client) GetSheetDataCSV(gid string) ([][]string, error) {
	url := fmt.Sprintf("%s/%s/export?format=csv&gid=%s", c.baseURL, c.spreadsheetID, gid)

	resp, err := c.httpClient.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch sheet data: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	return readCSV(resp.Body)
}

// LoadPlayersFile reads a player pool saved from the sheet's CSV export.
func LoadPlayersFile(path string) ([]models.Player, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open players file: %w", err)
	}
	defer file.Close()

	data, err := readCSV(file)
	if err != nil {
		return nil, err
	}
	return ParsePlayerPool(data)
}

// ParsePlayerPool turns the Master Player Pool export into players. The first
// row is a banner and the second carries the column headers. Rows that
// cannot be parsed are skipped, and when a name and MLB team appear twice
// the first row wins.
func ParsePlayerPool(data [][]string) ([]models.Player, error) {
	if len(data) < 3 { // Need at least header rows and one data row
		return nil, fmt.Errorf("insufficient data in player pool sheet")
	}

	headerRow := data[1]
	seen := make(map[string]bool)

	var players []models.Player
	for i := 2; i < len(data); i++ {
		player, err := models.ParsePlayerRow(data[i], headerRow)
		if err != nil || player == nil {
			continue
		}
		if seen[player.ID] {
			continue
		}
		seen[player.ID] = true
		players = append(players, *player)
	}

	return players, nil
}

func readCSV(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	var data [][]string

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV: %w", err)
		}
		data = append(data, record)
	}

	return data, nil
}
