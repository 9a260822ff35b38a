package postgres

const insertEventSQL = `
INSERT INTO events (
  initiator_id, title, annotation, description, category, lat, lon,
  event_date, participant_limit, request_moderation, confirmed_requests,
  rating, number_of_likes, state, published_on, created_on
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)
RETURNING id
`

const eventColumns = `
id, initiator_id, title, annotation, description, category, lat, lon,
event_date, participant_limit, request_moderation, confirmed_requests,
rating, number_of_likes, state, published_on, created_on
`

const getEventSQL = `SELECT ` + eventColumns + ` FROM events WHERE id = $1`

const getEventForUpdateSQL = getEventSQL + ` FOR UPDATE`

const updateEventSQL = `
UPDATE events SET
  title=$2, annotation=$3, description=$4, category=$5, lat=$6, lon=$7,
  event_date=$8, participant_limit=$9, request_moderation=$10,
  state=$11, published_on=$12
WHERE id=$1
`

const likeDeltaSQL = `
UPDATE events SET rating = rating + $2, number_of_likes = number_of_likes + $3
WHERE id = $1
`

const initiatorAggregatesSQL = `
SELECT COALESCE(SUM(rating), 0), COALESCE(SUM(number_of_likes), 0)
FROM events
WHERE initiator_id = $1 AND state = 'PUBLISHED' AND number_of_likes > 0
`

const insertLikeSQL = `
INSERT INTO likes (user_id, event_id, is_like, clicked_on)
VALUES ($1,$2,$3,$4)
RETURNING id
`

const getLikeSQL = `
SELECT id, user_id, event_id, is_like, clicked_on
FROM likes WHERE user_id = $1 AND event_id = $2
`

const insertUserSQL = `
INSERT INTO users (name, email, rating) VALUES ($1,$2,0)
RETURNING id
`

const insertRequestSQL = `
INSERT INTO participation_requests (event_id, requester_id, status, created)
VALUES ($1,$2,$3,$4)
RETURNING id
`

const requestColumns = `id, event_id, requester_id, status, created`

// Positive adjustments are guarded by the limit so a full event reports zero
// affected rows instead of overbooking.
const confirmIncrementSQL = `
UPDATE events SET confirmed_requests = confirmed_requests + 1
WHERE id = $1 AND (participant_limit = 0 OR confirmed_requests < participant_limit)
`

const confirmDecrementSQL = `
UPDATE events SET confirmed_requests = confirmed_requests - 1
WHERE id = $1 AND confirmed_requests > 0
`
