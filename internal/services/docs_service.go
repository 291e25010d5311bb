package services

import (
	"bytes"
	"database/sql"
	"errors"
	"fmt"

	"busdesk/internal/domain"
	"busdesk/internal/repositories"
	"busdesk/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// DocsService renders the printable e-ticket. The 3-digit ticket number
// is the headline of the document; its format is what fixes the 999
// capacity ceiling.
type DocsService struct {
	Tickets   repositories.TicketRepository
	Trips     repositories.TripRepository
	RequestID string
	Loader    func(int64) (ticketDocData, error)
}

type ticketDocData struct {
	TicketID       int64
	TicketNumber   string
	PassengerName  string
	PassengerPhone string
	BoardingPoint  string
	DepartureCity  string
	ArrivalCity    string
	DepartureDate  string
	DepartureTime  string
	BusNumber      string
	BusName        string
	Status         string
	PaymentStatus  string
	Amount         int64
	IsOpenDate     bool
}

func (s DocsService) GenerateETicket(ticketID int64) ([]byte, string, error) {
	data, err := s.loadTicketDocData(ticketID)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "docs", "generate_eticket", fmt.Sprintf("ticket_id=%d", ticketID))
	return buildETicketPDF(data)
}

func (s DocsService) loadTicketDocData(ticketID int64) (ticketDocData, error) {
	if s.Loader != nil {
		return s.Loader(ticketID)
	}

	var out ticketDocData
	t, err := s.Tickets.GetByID(ticketID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return out, domain.NotFoundError{Resource: "ticket"}
		}
		return out, domain.InternalError{Err: err}
	}

	out.TicketID = t.ID
	out.TicketNumber = t.TicketNumber
	out.PassengerName = t.PassengerName
	out.PassengerPhone = t.PassengerPhone
	out.BoardingPoint = t.BoardingPoint
	out.Status = string(t.Status)
	out.PaymentStatus = string(t.PaymentStatus)
	out.Amount = t.PaymentAmount
	out.IsOpenDate = t.IsOpenDate

	trip, err := s.Trips.GetByID(t.TripID)
	if err == nil {
		out.DepartureCity = trip.DepartureCity
		out.ArrivalCity = trip.ArrivalCity
		out.DepartureDate = trip.DepartureDate
		out.DepartureTime = trip.DepartureTime
		out.BusNumber = trip.BusNumber
		out.BusName = trip.BusName
		if out.Amount == 0 {
			out.Amount = trip.Price
		}
	}

	return out, nil
}

func buildETicketPDF(data ticketDocData) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A5", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, "BUS E-TICKET", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "B", 28)
	pdf.CellFormat(0, 16, "No. "+data.TicketNumber, "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 11)
	row := func(label, value string) {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(45, 8, label, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		pdf.CellFormat(0, 8, value, "", 1, "L", false, 0, "")
	}

	row("Passenger", data.PassengerName)
	if data.PassengerPhone != "" {
		row("Phone", data.PassengerPhone)
	}
	row("From", data.DepartureCity)
	row("To", data.ArrivalCity)
	if data.IsOpenDate {
		row("Date", "open date")
	} else {
		row("Date", data.DepartureDate+" "+data.DepartureTime)
	}
	if data.BoardingPoint != "" {
		row("Boarding", data.BoardingPoint)
	}
	if data.BusNumber != "" {
		row("Bus", data.BusNumber+" "+data.BusName)
	}
	row("Status", data.Status)
	row("Payment", fmt.Sprintf("%s (%s)", data.PaymentStatus, utils.FormatAmount(data.Amount)))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", domain.InternalError{Msg: "render e-ticket", Err: err}
	}

	filename := fmt.Sprintf("e-ticket-%s.pdf", data.TicketNumber)
	return buf.Bytes(), filename, nil
}
