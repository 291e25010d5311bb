package services

import (
	"bytes"
	"testing"

	"busdesk/internal/domain"
)

func TestGenerateETicket(t *testing.T) {
	svc := DocsService{
		Loader: func(id int64) (ticketDocData, error) {
			return ticketDocData{
				TicketID:       id,
				TicketNumber:   "042",
				PassengerName:  "Ana Petrov",
				PassengerPhone: "555-0101",
				BoardingPoint:  "Main station",
				DepartureCity:  "Springfield",
				ArrivalCity:    "Shelbyville",
				DepartureDate:  "2026-09-01",
				DepartureTime:  "08:30",
				BusNumber:      "B-12",
				BusName:        "Express",
				Status:         "confirmed",
				PaymentStatus:  "paid",
				Amount:         150000,
			}, nil
		},
	}

	pdf, filename, err := svc.GenerateETicket(7)
	if err != nil {
		t.Fatalf("GenerateETicket: %v", err)
	}
	if filename != "e-ticket-042.pdf" {
		t.Errorf("filename = %q, want e-ticket-042.pdf", filename)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Error("output does not look like a PDF")
	}
	if len(pdf) < 500 {
		t.Errorf("suspiciously small PDF: %d bytes", len(pdf))
	}
}

func TestGenerateETicketOpenDate(t *testing.T) {
	svc := DocsService{
		Loader: func(id int64) (ticketDocData, error) {
			return ticketDocData{TicketNumber: "001", PassengerName: "Ana", IsOpenDate: true}, nil
		},
	}

	pdf, _, err := svc.GenerateETicket(1)
	if err != nil {
		t.Fatalf("GenerateETicket: %v", err)
	}
	if len(pdf) == 0 {
		t.Error("empty PDF")
	}
}

func TestGenerateETicketMissingTicket(t *testing.T) {
	svc := DocsService{
		Loader: func(id int64) (ticketDocData, error) {
			return ticketDocData{}, domain.NotFoundError{Resource: "ticket"}
		},
	}

	if _, _, err := svc.GenerateETicket(9); !domain.IsNotFound(err) {
		t.Fatalf("want not-found, got %v", err)
	}
}
