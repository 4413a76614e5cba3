package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"casper-stock-watcher/internal/models"
	"casper-stock-watcher/internal/query"
)

const (
	searchPathFormat = "/gw/wp/product/v2/product/exhibition/cars/%s"
	subRegionPath    = "/gw/wp/common/v2/common/address/si-gun"

	rspCodeOK = "0000"
)

// ProtocolError means the showroom answered but not with a usable result:
// a non-2xx status, a non-OK rspCode, or a body missing the expected
// fields. It is distinct from transport errors so callers can classify
// the two separately.
type ProtocolError struct {
	StatusCode int
	RspCode    string
	Message    string
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("showroom protocol error: status=%d rspCode=%s message=%s",
		e.StatusCode, e.RspCode, e.Message)
}

// SearchResult is one page of a stock search plus the remote-reported
// total across all pages.
type SearchResult struct {
	TotalCount int
	Units      []models.StockUnit
}

// ShowroomClient talks to the Casper online showroom API.
type ShowroomClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewShowroomClient creates a client for the given showroom base URL.
func NewShowroomClient(baseURL string, timeout time.Duration) *ShowroomClient {
	return &ShowroomClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// searchRequest is the wire form of a stock search. Field names and the
// fixed values mirror what the showroom web client sends.
type searchRequest struct {
	CarCode               string   `json:"carCode"`
	SubsidyRegion         string   `json:"subsidyRegion"`
	ExhbNo                string   `json:"exhbNo"`
	SortCode              string   `json:"sortCode"`
	DeliveryAreaCode      string   `json:"deliveryAreaCode"`
	DeliveryLocalAreaCode string   `json:"deliveryLocalAreaCode"`
	CarBodyCode           string   `json:"carBodyCode"`
	CarEngineCode         string   `json:"carEngineCode"`
	CarTrimCode           string   `json:"carTrimCode"`
	ExteriorColorCode     string   `json:"exteriorColorCode"`
	InteriorColorCode     []string `json:"interiorColorCode"`
	DeliveryCenterCode    string   `json:"deliveryCenterCode"`
	WpaScnCd              string   `json:"wpaScnCd"`
	OptionFilter          string   `json:"optionFilter"`
	MinSalePrice          string   `json:"minSalePrice"`
	MaxSalePrice          string   `json:"maxSalePrice"`
	ChoiceOptYn           string   `json:"choiceOptYn"`
	PageNo                int      `json:"pageNo"`
	PageSize              int      `json:"pageSize"`
}

func newSearchRequest(q query.SearchQuery) searchRequest {
	interiorColors := []string{}
	if q.InteriorColors != "" {
		interiorColors = strings.Split(q.InteriorColors, ",")
	}
	return searchRequest{
		CarCode:               q.CarCode,
		SubsidyRegion:         q.SubsidyRegion,
		ExhbNo:                q.ExhibitionNo,
		SortCode:              q.SortCode,
		DeliveryAreaCode:      q.RegionCode,
		DeliveryLocalAreaCode: q.SubRegionCode,
		CarBodyCode:           q.BodyCode,
		CarEngineCode:         q.EngineCode,
		CarTrimCode:           q.TrimCode,
		ExteriorColorCode:     q.ExteriorColor,
		InteriorColorCode:     interiorColors,
		DeliveryCenterCode:    q.DeliveryCenter,
		WpaScnCd:              q.OptionScenario,
		OptionFilter:          q.OptionFilter,
		MinSalePrice:          q.MinSalePrice,
		MaxSalePrice:          q.MaxSalePrice,
		ChoiceOptYn:           q.ChoiceOptions,
		PageNo:                q.PageNo,
		PageSize:              q.PageSize,
	}
}

// wireAmount decodes the showroom's price fields, which arrive sometimes as
// numbers and sometimes as numeric strings like "35877000.00".
type wireAmount float64

func (a *wireAmount) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*a = 0
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("invalid amount %q: %w", s, err)
	}
	*a = wireAmount(f)
	return nil
}

type wireChoiceOption struct {
	ChoiceOptionName  string     `json:"choiceOptionName"`
	ChoiceOptionPrice wireAmount `json:"choiceOptionPrice"`
}

type wireCar struct {
	CarName                 string             `json:"carName"`
	SaleModelName           string             `json:"saleModelName"`
	CarTrimName             string             `json:"carTrimName"`
	ExteriorColorName       string             `json:"exteriorColorName"`
	InteriorColorName       string             `json:"interiorColorName"`
	CarMissionName          string             `json:"carMissionName"`
	CarPrice                wireAmount         `json:"carPrice"`
	DiscountPrice           wireAmount         `json:"discountPrice"`
	DiscountRate            wireAmount         `json:"discountRate"`
	FinalAmount             wireAmount         `json:"finalAmount"`
	TotalDeiveryPrice       wireAmount         `json:"totalDeiveryPrice"`
	CarChoiceOption         []wireChoiceOption `json:"carChoiceOption"`
	OptionSummary           string             `json:"optionSummary"`
	DeliveryCenterName      string             `json:"deliveryCenterName"`
	PrdnDt                  string             `json:"prdnDt"`
	CarProductionNumber     string             `json:"carProductionNumber"`
	DiscountReasonSubstance string             `json:"discountReasonSubstance"`
}

func (c wireCar) toStockUnit() models.StockUnit {
	unit := models.StockUnit{
		ModelName:      c.CarName,
		SaleModelName:  c.SaleModelName,
		Trim:           c.CarTrimName,
		ExteriorColor:  c.ExteriorColorName,
		InteriorColor:  c.InteriorColorName,
		Transmission:   c.CarMissionName,
		ListPrice:      int64(c.CarPrice),
		DiscountAmount: int64(c.DiscountPrice),
		DiscountRate:   float64(c.DiscountRate),
		FinalPrice:     int64(c.FinalAmount),
		DeliveryFee:    int64(c.TotalDeiveryPrice),
		DeliveryCenter: c.DeliveryCenterName,
		ProductionDate: c.PrdnDt,
		SerialNumber:   c.CarProductionNumber,
		DiscountReason: c.DiscountReasonSubstance,
		OptionSummary:  c.OptionSummary,
	}
	for _, opt := range c.CarChoiceOption {
		unit.ChosenOptions = append(unit.ChosenOptions, models.ChosenOption{
			Name:  opt.ChoiceOptionName,
			Price: int64(opt.ChoiceOptionPrice),
		})
	}
	return unit
}

type rspStatus struct {
	RspCode    string `json:"rspCode"`
	RspMessage string `json:"rspMessage"`
}

// SearchCars runs one page of a stock search. A non-2xx status, an error
// rspCode, or a body missing the expected data envelope all come back as a
// *ProtocolError; transport problems come back as the underlying error.
func (c *ShowroomClient) SearchCars(ctx context.Context, q query.SearchQuery) (*SearchResult, error) {
	url := c.baseURL + fmt.Sprintf(searchPathFormat, q.ExhibitionNo)

	jsonData, err := json.Marshal(newSearchRequest(q))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal search request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json;charset=UTF-8")
	req.Header.Set("Accept", "application/json, text/plain, */*")
	req.Header.Set("Ep-Channel", "wpc")
	req.Header.Set("Service-Type", "product")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &ProtocolError{
			StatusCode: resp.StatusCode,
			Message:    truncateBody(body),
		}
	}

	var response struct {
		RspStatus rspStatus `json:"rspStatus"`
		Data      *struct {
			TotalCount         *int      `json:"totalCount"`
			DiscountSearchCars []wireCar `json:"discountsearchcars"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, &ProtocolError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("undecodable body: %v", err),
		}
	}

	if response.RspStatus.RspCode != "" && response.RspStatus.RspCode != rspCodeOK {
		return nil, &ProtocolError{
			StatusCode: resp.StatusCode,
			RspCode:    response.RspStatus.RspCode,
			Message:    response.RspStatus.RspMessage,
		}
	}

	// A missing data block or total count is a malformed answer, never
	// "zero stock".
	if response.Data == nil || response.Data.TotalCount == nil {
		return nil, &ProtocolError{
			StatusCode: resp.StatusCode,
			RspCode:    response.RspStatus.RspCode,
			Message:    "response missing data.totalCount",
		}
	}

	result := &SearchResult{TotalCount: *response.Data.TotalCount}
	for _, car := range response.Data.DiscountSearchCars {
		result.Units = append(result.Units, car.toStockUnit())
	}
	return result, nil
}

// FetchSubRegions retrieves the sigun list for one sido code from the
// showroom address API. Used by the fetch-regions command to build
// region_data.json.
func (c *ShowroomClient) FetchSubRegions(ctx context.Context, regionCode string) ([]models.SubRegion, error) {
	url := c.baseURL + subRegionPath + "?commonCode=" + regionCode

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json, text/plain, */*")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &ProtocolError{
			StatusCode: resp.StatusCode,
			Message:    truncateBody(body),
		}
	}

	var response struct {
		RspStatus rspStatus          `json:"rspStatus"`
		Data      []models.SubRegion `json:"data"`
	}
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, &ProtocolError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("undecodable body: %v", err),
		}
	}

	if response.RspStatus.RspCode != rspCodeOK {
		return nil, &ProtocolError{
			StatusCode: resp.StatusCode,
			RspCode:    response.RspStatus.RspCode,
			Message:    response.RspStatus.RspMessage,
		}
	}

	return response.Data, nil
}

func truncateBody(body []byte) string {
	const max = 512
	if len(body) > max {
		return string(body[:max]) + "..."
	}
	return string(body)
}
