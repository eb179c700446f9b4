package receipt

import (
	"bytes"
	"fmt"
	"hotel-booking-service/internal/module/booking/models/entity"
	"strings"

	"github.com/go-pdf/fpdf"
	"github.com/yeqown/go-qrcode"
)

type Renderer interface {
	// Render turns a confirmed booking snapshot into a PDF. The same snapshot always yields the
	// same bytes.
	Render(snapshot entity.Snapshot) ([]byte, error)
}

type pdfRenderer struct {
	issuer string
}

func New(issuer string) Renderer {
	return &pdfRenderer{issuer: issuer}
}

func FileName(snapshot entity.Snapshot) string {
	return fmt.Sprintf("receipt-%s.pdf", snapshot.BookingID)
}

func (r *pdfRenderer) Render(s entity.Snapshot) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	// fixed dates and sorted catalog keep the output byte-identical
	pdf.SetCreationDate(s.ConfirmedAt)
	pdf.SetModificationDate(s.ConfirmedAt)
	pdf.SetCatalogSort(true)
	pdf.SetTitle(fmt.Sprintf("Booking receipt %s", s.BookingID), true)
	pdf.SetAuthor(r.issuer, true)
	pdf.SetMargins(18, 18, 18)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, r.issuer, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 7, "Booking receipt", "", 1, "L", false, 0, "")
	pdf.Ln(4)

	if err := r.qr(pdf, s.BookingID); err != nil {
		return nil, err
	}

	section(pdf, "Reservation")
	line(pdf, "Booking reference", s.BookingID)
	line(pdf, "Hotel", s.HotelName)
	line(pdf, "Address", s.HotelAddress)
	line(pdf, "Room", strings.TrimSpace(fmt.Sprintf("%s %s", s.RoomType, s.RoomNumber)))
	line(pdf, "Check-in", s.CheckIn)
	line(pdf, "Check-out", s.CheckOut)
	line(pdf, "Nights", fmt.Sprintf("%d", s.Nights))

	section(pdf, "Guest")
	line(pdf, "Name", s.GuestName)
	line(pdf, "Phone", s.GuestPhone)
	if s.GuestEmail != "" {
		line(pdf, "Email", s.GuestEmail)
	}

	if c := s.Customization; c != nil && !c.Empty() {
		section(pdf, "Requests")
		if c.Guests != nil {
			line(pdf, "Guests", rangeText(*c.Guests))
		}
		if c.Days != nil {
			line(pdf, "Days", rangeText(*c.Days))
		}
		if c.IncludedItems != "" {
			line(pdf, "Included", c.IncludedItems)
		}
	}

	section(pdf, "Payment")
	line(pdf, "Nightly rate", money(s.NightlyRate, s.Currency))
	line(pdf, "Total paid", money(s.TotalPrice, s.Currency))
	line(pdf, "Order", s.OrderID)
	line(pdf, "Payment", s.PaymentID)
	line(pdf, "Confirmed at", s.ConfirmedAt.UTC().Format("2006-01-02 15:04 MST"))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render receipt: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *pdfRenderer) qr(pdf *fpdf.Fpdf, bookingID string) error {
	code, err := qrcode.New(bookingID)
	if err != nil {
		return fmt.Errorf("encode qr: %w", err)
	}

	var img bytes.Buffer
	if err := code.SaveTo(&img); err != nil {
		return fmt.Errorf("encode qr: %w", err)
	}

	imageType := "JPG"
	if bytes.HasPrefix(img.Bytes(), []byte("\x89PNG")) {
		imageType = "PNG"
	}

	opts := fpdf.ImageOptions{ImageType: imageType}
	pdf.RegisterImageOptionsReader("booking-qr", opts, &img)
	pdf.ImageOptions("booking-qr", 162, 18, 30, 30, false, opts, 0, "")
	return pdf.Error()
}

func section(pdf *fpdf.Fpdf, title string) {
	pdf.Ln(3)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, title, "B", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
}

func line(pdf *fpdf.Fpdf, label string, value string) {
	pdf.CellFormat(45, 6, label, "", 0, "L", false, 0, "")
	pdf.MultiCell(0, 6, value, "", "L", false)
}

func money(amount float64, currency string) string {
	return fmt.Sprintf("%s %.2f", currency, amount)
}

func rangeText(r entity.Range) string {
	if r.Min == r.Max {
		return fmt.Sprintf("%d", r.Min)
	}
	return fmt.Sprintf("%d - %d", r.Min, r.Max)
}
