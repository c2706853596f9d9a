package main

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/YaCodeDev/GoYaTgEntities/yaentity"
	"github.com/YaCodeDev/GoYaTgEntities/yaentityapi"
	"github.com/YaCodeDev/GoYaTgEntities/yaerrors"
	"github.com/YaCodeDev/GoYaTgEntities/yatgmessageencoding"
)

func readMessage(in io.Reader) (*yaentity.Message, yaerrors.Error) {
	var msg yaentity.Message

	if err := json.NewDecoder(in).Decode(&msg); err != nil {
		return nil, yaerrors.FromError(http.StatusBadRequest, err, "read message")
	}

	return &msg, nil
}

func resolve(in io.Reader, out io.Writer) yaerrors.Error {
	msg, yaErr := readMessage(in)
	if yaErr != nil {
		return yaErr
	}

	resolved, yaErr := msg.Resolve()
	if yaErr != nil {
		return yaErr
	}

	encoder := json.NewEncoder(out)
	encoder.SetEscapeHTML(false)

	if err := encoder.Encode(yaentityapi.ResolveResponse{Entities: resolved}); err != nil {
		return yaerrors.FromError(http.StatusInternalServerError, err, "write resolved entities")
	}

	return nil
}

func render(in io.Reader, out io.Writer, encodingName string, kinds yaentity.KindSet) yaerrors.Error {
	encoding, yaErr := yatgmessageencoding.ByName(encodingName, yatgmessageencoding.WithKinds(kinds))
	if yaErr != nil {
		return yaErr
	}

	msg, yaErr := readMessage(in)
	if yaErr != nil {
		return yaErr
	}

	text, yaErr := encoding.Unparse(msg.Text, msg.Entities)
	if yaErr != nil {
		return yaErr
	}

	if _, err := io.WriteString(out, text+"\n"); err != nil {
		return yaerrors.FromError(http.StatusInternalServerError, err, "write rendered text")
	}

	return nil
}
