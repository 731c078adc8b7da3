package polly

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/credentials"
)

const signingService = "polly"

// requestSigner подписывает запросы к Polly по AWS SigV4
type requestSigner struct {
	creds  aws.CredentialsProvider
	signer *v4.Signer
	region string
	now    func() time.Time
}

func newRequestSigner(accessKeyID, secretAccessKey, region string, now func() time.Time) *requestSigner {
	return &requestSigner{
		creds:  credentials.NewStaticCredentialsProvider(accessKeyID, secretAccessKey, ""),
		signer: v4.NewSigner(),
		region: region,
		now:    now,
	}
}

// Sign добавляет X-Amz-Date и Authorization в запрос
func (s *requestSigner) Sign(req *http.Request) error {
	ctx := req.Context()

	creds, err := s.creds.Retrieve(ctx)
	if err != nil {
		return fmt.Errorf("ошибка получения ключей AWS: %w", err)
	}

	payload, err := readBody(req)
	if err != nil {
		return err
	}
	sum := sha256.Sum256(payload)

	return s.signer.SignHTTP(ctx, creds, req, hex.EncodeToString(sum[:]), signingService, s.region, s.now().UTC())
}

// readBody читает тело запроса для хеша, оставляя его доступным для отправки
func readBody(req *http.Request) ([]byte, error) {
	if req.GetBody != nil {
		body, err := req.GetBody()
		if err != nil {
			return nil, fmt.Errorf("ошибка получения тела запроса: %w", err)
		}
		defer body.Close()
		return io.ReadAll(body)
	}
	if req.Body == nil || req.Body == http.NoBody {
		return []byte{}, nil
	}

	payload, err := io.ReadAll(req.Body)
	req.Body.Close()
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения тела запроса: %w", err)
	}
	req.Body = io.NopCloser(bytes.NewReader(payload))
	return payload, nil
}
