// SPDX-FileCopyrightText: Copyright 2025 Recgraph Authors
// SPDX-License-Identifier: Apache-2.0

package engine

// processScript rebuilds the similarity row of one item in a single atomic
// step. Readers of the row observe either the old contents or the fully
// rebuilt one, never a partial rewrite.
//
// KEYS[1]  similarity row of the focal item
// ARGV[1]  focal item id
// ARGV[2]  row limit (0 = unbounded)
// ARGV[3]  matrix count N
// ARGV[3+3m-2 .. 3+3m]  forward prefix, reverse prefix, weight of matrix m
//
// Returns the cardinality of the rebuilt row.
const processScript = `
local simkey = KEYS[1]
local item = ARGV[1]
local limit = tonumber(ARGV[2])
local nmatrices = tonumber(ARGV[3])

local matrices = {}
local totalweight = 0
for m = 1, nmatrices do
  local base = 3 + (m - 1) * 3
  local mat = {
    fwd = ARGV[base + 1],
    rev = ARGV[base + 2],
    weight = tonumber(ARGV[base + 3]),
    sets = {},
    count = 0,
  }
  matrices[m] = mat
  totalweight = totalweight + mat.weight
end

local candidates = {}
for m = 1, nmatrices do
  local mat = matrices[m]
  local sets = redis.call('SMEMBERS', mat.rev .. item)
  mat.count = #sets
  for _, s in ipairs(sets) do
    mat.sets[s] = true
    local members = redis.call('SMEMBERS', mat.fwd .. s)
    for _, j in ipairs(members) do
      if j ~= item then
        candidates[j] = true
      end
    end
  end
end

redis.call('DEL', simkey)

for j in pairs(candidates) do
  local score = 0
  for m = 1, nmatrices do
    local mat = matrices[m]
    local jsets = redis.call('SMEMBERS', mat.rev .. j)
    local inter = 0
    for _, s in ipairs(jsets) do
      if mat.sets[s] then
        inter = inter + 1
      end
    end
    local union = mat.count + #jsets - inter
    if union > 0 then
      score = score + mat.weight * (inter / union)
    end
  end
  if totalweight > 0 then
    score = score / totalweight
  end
  if score > 0 then
    redis.call('ZADD', simkey, score, j)
  end
end

if limit > 0 then
  local excess = redis.call('ZCARD', simkey) - limit
  if excess > 0 then
    redis.call('ZREMRANGEBYRANK', simkey, 0, excess - 1)
  end
end

return redis.call('ZCARD', simkey)
`
