package users

import (
	"encoding/json"
	"encoding/xml"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
)

// DecodeBody unmarshals the request body by Content-Type: XML when the
// header says so, JSON for everything else including an absent header.
func DecodeBody(c *fiber.Ctx, out any) error {
	body := c.Body()
	if len(body) == 0 {
		return errors.New("request body is empty", errors.CategoryBadInput).
			WithCode(errors.CodeBadRequest).
			WithTextCode(TextCodeValidation)
	}

	var err error
	if isXML(c.Get(fiber.HeaderContentType)) {
		err = xml.Unmarshal(body, out)
	} else {
		err = json.Unmarshal(body, out)
	}

	if err != nil {
		return errors.Wrap(err, errors.CategoryBadInput, "unable to parse request body").
			WithCode(errors.CodeBadRequest).
			WithTextCode(TextCodeValidation)
	}

	return nil
}

// Respond writes the body in the encoding the Accept header asks for. XML is
// honored when requested explicitly; wildcard, absent, and unknown types all
// fall back to JSON.
func Respond(c *fiber.Ctx, status int, body any) error {
	if isXML(c.Get(fiber.HeaderAccept)) {
		return c.Status(status).XML(body)
	}
	return c.Status(status).JSON(body)
}

func isXML(contentType string) bool {
	ct := strings.ToLower(strings.TrimSpace(contentType))
	return strings.Contains(ct, fiber.MIMEApplicationXML) || strings.Contains(ct, fiber.MIMETextXML)
}
