package server

import (
	"encoding/base64"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Caqil/threshold-encrypt/internal/session"
	"github.com/Caqil/threshold-encrypt/internal/storage"
	"github.com/Caqil/threshold-encrypt/pkg/codec"
	"github.com/Caqil/threshold-encrypt/pkg/crypto/curve"
	"github.com/Caqil/threshold-encrypt/pkg/envelope"
	"github.com/Caqil/threshold-encrypt/pkg/userset"
)

type createSetRequest struct {
	Name            string   `json:"name" binding:"required"`
	Curve           string   `json:"curve"`
	Owners          []string `json:"owners" binding:"required"`
	OwnerThreshold  int      `json:"owner_threshold" binding:"required"`
	Members         []string `json:"members"`
	MemberThreshold int      `json:"member_threshold"`
}

type holderShardResponse struct {
	Holder  string `json:"holder"`
	Owner   bool   `json:"owner"`
	ShardID uint32 `json:"shard_id"`

	// Shard is returned exactly once, at creation. It is never stored.
	Shard string `json:"shard"`
}

type createSetResponse struct {
	ID          uuid.UUID             `json:"id"`
	Name        string                `json:"name"`
	Curve       string                `json:"curve"`
	Threshold   int                   `json:"threshold"`
	PublicKey   string                `json:"public_key"`
	Commitments []string              `json:"commitments"`
	Shards      []holderShardResponse `json:"shards"`
}

func (s *Server) handleCreateSet(c *gin.Context) {
	var req createSetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	curveName := req.Curve
	if curveName == "" {
		curveName = "P-256"
	}
	crv, err := curve.FromName(curveName)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	info, err := userset.NewInfo(req.Name, req.Owners, req.OwnerThreshold, req.Members, req.MemberThreshold)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	key, err := userset.GenerateGroupKey(crv, info)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	set := &storage.UserSet{
		ID:              info.ID,
		Name:            info.Name,
		CurveName:       key.CurveName,
		OwnerThreshold:  info.OwnerThreshold,
		MemberThreshold: info.MemberThreshold,
		PublicKey:       crv.Marshal(key.Public),
		Commitments:     flattenPoints(crv, key.Commitments),
	}
	for _, hs := range key.Shards {
		set.Holders = append(set.Holders, storage.Holder{
			SetID:   info.ID,
			Name:    hs.Holder,
			ShardID: hs.Shard.ID,
			Owner:   hs.Owner,
		})
	}

	if err := s.store.CreateSet(set); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, storage.ErrSetExists) {
			status = http.StatusConflict
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	resp := createSetResponse{
		ID:        info.ID,
		Name:      info.Name,
		Curve:     key.CurveName,
		Threshold: info.Threshold(),
		PublicKey: base64.StdEncoding.EncodeToString(crv.Marshal(key.Public)),
	}
	for _, p := range key.Commitments {
		resp.Commitments = append(resp.Commitments, base64.StdEncoding.EncodeToString(crv.Marshal(p)))
	}
	for _, hs := range key.Shards {
		text, err := codec.FormatShard(hs.Shard)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		resp.Shards = append(resp.Shards, holderShardResponse{
			Holder:  hs.Holder,
			Owner:   hs.Owner,
			ShardID: hs.Shard.ID,
			Shard:   text,
		})
	}

	s.log.Info().
		Str("set_id", info.ID.String()).
		Str("name", info.Name).
		Int("holders", info.Holders()).
		Int("threshold", info.Threshold()).
		Msg("userset created")

	c.JSON(http.StatusCreated, resp)
}

type setResponse struct {
	ID              uuid.UUID        `json:"id"`
	Name            string           `json:"name"`
	Curve           string           `json:"curve"`
	OwnerThreshold  int              `json:"owner_threshold"`
	MemberThreshold int              `json:"member_threshold"`
	PublicKey       string           `json:"public_key"`
	Holders         []holderResponse `json:"holders,omitempty"`
}

type holderResponse struct {
	Name    string `json:"name"`
	ShardID uint32 `json:"shard_id"`
	Owner   bool   `json:"owner"`
}

func toSetResponse(set *storage.UserSet) setResponse {
	resp := setResponse{
		ID:              set.ID,
		Name:            set.Name,
		Curve:           set.CurveName,
		OwnerThreshold:  set.OwnerThreshold,
		MemberThreshold: set.MemberThreshold,
		PublicKey:       base64.StdEncoding.EncodeToString(set.PublicKey),
	}
	for _, h := range set.Holders {
		resp.Holders = append(resp.Holders, holderResponse{Name: h.Name, ShardID: h.ShardID, Owner: h.Owner})
	}
	return resp
}

func (s *Server) handleListSets(c *gin.Context) {
	sets, err := s.store.ListSets()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	resp := make([]setResponse, 0, len(sets))
	for i := range sets {
		resp = append(resp, toSetResponse(&sets[i]))
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleGetSet(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid userset id"})
		return
	}

	set, err := s.store.GetSet(id)
	if err != nil {
		c.JSON(storageStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, toSetResponse(set))
}

func (s *Server) handleDeleteSet(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid userset id"})
		return
	}

	if err := s.store.DeleteSet(id); err != nil {
		c.JSON(storageStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

type startSessionRequest struct {
	Ciphertext string `json:"ciphertext" binding:"required"`
}

type sessionResponse struct {
	ID        uuid.UUID      `json:"id"`
	SetID     uuid.UUID      `json:"set_id"`
	Status    session.Status `json:"status"`
	Collected int            `json:"collected"`
	Required  int            `json:"required"`
}

func (s *Server) handleStartSession(c *gin.Context) {
	setID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid userset id"})
		return
	}

	var req startSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	set, err := s.store.GetSet(setID)
	if err != nil {
		c.JSON(storageStatus(err), gin.H{"error": err.Error()})
		return
	}

	crv, err := curve.FromName(set.CurveName)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ct, err := codec.DecodeCiphertextText(req.Ciphertext, crv)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	policy := session.Policy{
		OwnerShardIDs: make(map[uint32]bool),
		TotalShards:   len(set.Holders),
		OwnerQuorum:   set.OwnerThreshold,
		MemberQuorum:  set.MemberThreshold,
	}
	for _, h := range set.Holders {
		if h.Owner {
			policy.OwnerShardIDs[h.ShardID] = true
		}
	}

	sess, err := s.sessions.Create(setID, policy)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.mu.Lock()
	s.ciphertexts[sess.ID] = &sessionCiphertext{
		curveName: set.CurveName,
		ct:        ct,
		threshold: policy.Threshold(),
	}
	s.mu.Unlock()

	s.log.Info().
		Str("session_id", sess.ID.String()).
		Str("set_id", setID.String()).
		Msg("decryption session started")

	c.JSON(http.StatusCreated, sessionResponse{
		ID:       sess.ID,
		SetID:    setID,
		Status:   session.StatusCollecting,
		Required: policy.Threshold(),
	})
}

func (s *Server) handleSessionStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid session id"})
		return
	}

	collected, required, err := s.sessions.Progress(id)
	if err != nil {
		c.JSON(sessionStatus(err), gin.H{"error": err.Error()})
		return
	}

	status := session.StatusCollecting
	if _, err := s.sessions.Parts(id); err == nil {
		status = session.StatusReady
	}

	c.JSON(http.StatusOK, sessionResponse{
		ID:        id,
		Status:    status,
		Collected: collected,
		Required:  required,
	})
}

type submitPartRequest struct {
	Part string `json:"part" binding:"required"`
}

func (s *Server) handleSubmitPart(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid session id"})
		return
	}

	var req submitPartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.mu.Lock()
	entry, ok := s.ciphertexts[id]
	s.mu.Unlock()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": session.ErrSessionNotFound.Error()})
		return
	}

	crv, err := curve.FromName(entry.curveName)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	part, err := codec.DecodePartText(req.Part, crv)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	status, err := s.sessions.AddPart(id, part)
	if err != nil {
		c.JSON(sessionStatus(err), gin.H{"error": err.Error()})
		return
	}

	collected, required, _ := s.sessions.Progress(id)
	c.JSON(http.StatusOK, sessionResponse{
		ID:        id,
		Status:    status,
		Collected: collected,
		Required:  required,
	})
}

func (s *Server) handleCombine(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid session id"})
		return
	}

	s.mu.Lock()
	entry, ok := s.ciphertexts[id]
	s.mu.Unlock()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": session.ErrSessionNotFound.Error()})
		return
	}

	parts, err := s.sessions.Parts(id)
	if err != nil {
		c.JSON(sessionStatus(err), gin.H{"error": err.Error()})
		return
	}

	crv, err := curve.FromName(entry.curveName)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	plaintext, err := envelope.Open(crv, parts, entry.ct, entry.threshold)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, envelope.ErrAuthenticationFailed) {
			status = http.StatusUnprocessableEntity
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	s.sessions.Close(id)
	s.mu.Lock()
	delete(s.ciphertexts, id)
	s.mu.Unlock()

	s.log.Info().Str("session_id", id.String()).Msg("ciphertext decrypted")

	c.JSON(http.StatusOK, gin.H{
		"plaintext": base64.StdEncoding.EncodeToString(plaintext),
	})
}

func flattenPoints(c curve.Curve, points []*curve.Point) []byte {
	out := make([]byte, 0, len(points)*c.PointSize())
	for _, p := range points {
		out = append(out, c.Marshal(p)...)
	}
	return out
}

func storageStatus(err error) int {
	if errors.Is(err, storage.ErrSetNotFound) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func sessionStatus(err error) int {
	switch {
	case errors.Is(err, session.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, session.ErrSessionExpired):
		return http.StatusGone
	case errors.Is(err, session.ErrDuplicatePart),
		errors.Is(err, session.ErrUnknownShard),
		errors.Is(err, session.ErrQuorumNotReached):
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}
