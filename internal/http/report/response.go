package report

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/salesdash/internal/product"
)

type transactionResponse struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Price       json.Number `json:"price"`
	Category    string      `json:"category"`
	Image       string      `json:"image,omitempty"`
	Sold        bool        `json:"sold"`
	DateOfSale  time.Time   `json:"dateOfSale"`
}

type pageResponse struct {
	Items      []transactionResponse `json:"items"`
	Page       int                   `json:"page"`
	PerPage    int                   `json:"perPage"`
	TotalItems int                   `json:"totalItems"`
	TotalPages int                   `json:"totalPages"`
}

type statisticsResponse struct {
	TotalSaleAmount   json.Number `json:"totalSaleAmount"`
	TotalSoldItems    int64       `json:"totalSoldItems"`
	TotalNotSoldItems int64       `json:"totalNotSoldItems"`
}

type bucketResponse struct {
	Range string `json:"range"`
	Count int64  `json:"count"`
}

type dashboardResponse struct {
	Month        int                `json:"month"`
	Transactions pageResponse       `json:"transactions"`
	Statistics   statisticsResponse `json:"statistics"`
	BarChart     []bucketResponse   `json:"barChart"`
}

func number(d decimal.Decimal) json.Number {
	return json.Number(d.String())
}

func toTransactionResponse(tx *product.Transaction) transactionResponse {
	return transactionResponse{
		ID:          tx.SourceRef,
		Title:       tx.Title,
		Description: tx.Description,
		Price:       number(tx.Price),
		Category:    tx.Category,
		Image:       tx.Image,
		Sold:        tx.Sold,
		DateOfSale:  tx.DateOfSale,
	}
}

func toPageResponse(p *product.Page) pageResponse {
	items := make([]transactionResponse, 0, len(p.Items))
	for _, tx := range p.Items {
		items = append(items, toTransactionResponse(tx))
	}

	return pageResponse{
		Items:      items,
		Page:       p.Page,
		PerPage:    p.PerPage,
		TotalItems: p.TotalItems,
		TotalPages: p.TotalPages,
	}
}

func toStatisticsResponse(st *product.Statistics) statisticsResponse {
	return statisticsResponse{
		TotalSaleAmount:   number(st.TotalSaleAmount),
		TotalSoldItems:    st.TotalSoldItems,
		TotalNotSoldItems: st.TotalNotSoldItems,
	}
}

func toBucketResponses(buckets []product.Bucket) []bucketResponse {
	resp := make([]bucketResponse, 0, len(buckets))
	for _, b := range buckets {
		resp = append(resp, bucketResponse{Range: b.Range, Count: b.Count})
	}

	return resp
}
